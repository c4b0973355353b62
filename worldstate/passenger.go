package worldstate

import "github.com/elevsim/judge/floor"

// Passenger is the authoritative record for one passenger request.
type Passenger struct {
	ID       int
	Priority int
	From, To floor.Index

	RequestTime float64
	Status      Status

	CurrentFloor floor.Index
	Elevator     int // bound elevator id while Waiting or Inside; 0 otherwise

	LastReceive    float64
	CompletionTime float64
}

// Assignment is a live RECEIVE that has not yet been resolved by IN/OUT or
// cancelled by a scheduling/update begin.
type Assignment struct {
	Elevator    int
	ReceiveTime float64
}
