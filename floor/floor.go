// Package floor models the eleven-floor universe shared by every elevator
// in the contest: four underground levels below seven above-ground levels,
// adjacent by index with no floor between B1 and F1.
package floor

import "fmt"

// Index identifies a floor by its position in the building, low to high.
// The zero value is B4, the lowest floor.
type Index int

// names is the ordered floor universe, low to high. Index i corresponds to
// names[i].
var names = [...]string{
	"B4", "B3", "B2", "B1",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7",
}

var byName = func() map[string]Index {
	m := make(map[string]Index, len(names))
	for i, n := range names {
		m[n] = Index(i)
	}
	return m
}()

const (
	// Min is the lowest legal floor index (B4).
	Min Index = 0
	// Max is the highest legal floor index (F7).
	Max Index = Index(len(names) - 1)
)

// scheTargets is the restricted set of floors a SCHE or UPDATE command may
// name as its target, per the request-stream grammar.
var scheTargets = map[string]bool{
	"B2": true, "B1": true, "F1": true, "F2": true,
	"F3": true, "F4": true, "F5": true,
}

// Parse resolves a floor name (e.g. "B2", "F7") to its Index. It returns
// false if name is not one of the eleven recognised floors.
func Parse(name string) (Index, bool) {
	idx, ok := byName[name]
	return idx, ok
}

// MustParse is like Parse but panics on an unrecognised name; intended for
// use with compile-time-known floor literals (tests, constants).
func MustParse(name string) Index {
	idx, ok := Parse(name)
	if !ok {
		panic(fmt.Sprintf("floor: unrecognised floor %q", name))
	}
	return idx
}

// String returns the floor's canonical name, e.g. "B2" or "F5".
func (i Index) String() string {
	if i < Min || i > Max {
		return fmt.Sprintf("floor(%d)", int(i))
	}
	return names[i]
}

// Valid reports whether i is within [Min, Max].
func (i Index) Valid() bool {
	return i >= Min && i <= Max
}

// IsSCHETarget reports whether name is one of the seven floors a SCHE or
// UPDATE command is allowed to target (B2, B1, F1..F5).
func IsSCHETarget(name string) bool {
	return scheTargets[name]
}

// Adjacent reports whether b is exactly one step away from a in either
// direction.
func Adjacent(a, b Index) bool {
	d := int(a) - int(b)
	return d == 1 || d == -1
}

// Range describes the inclusive interval of floors an elevator may legally
// visit: the full universe for NORMAL/SCHE modes, a sub-range for
// double-carriage modes.
type Range struct {
	Min, Max Index
}

// Full is the range spanning the entire floor universe.
var Full = Range{Min: Min, Max: Max}

// Contains reports whether i falls within r, inclusive.
func (r Range) Contains(i Index) bool {
	return i >= r.Min && i <= r.Max
}
