//go:build tools
// +build tools

// Package tools pins developer tooling used on this repository: struct field
// alignment (the Elevator and Passenger structs carry a lot of bool/int task
// fields) and static analysis. Neither is imported by judge code.
package tools

import (
	_ "github.com/dkorunic/betteralign/cmd/betteralign"
	_ "honnef.co/go/tools/cmd/staticcheck"
)
