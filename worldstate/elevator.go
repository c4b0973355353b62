package worldstate

import "github.com/elevsim/judge/floor"

// DefaultSpeed is an elevator's movement speed absent any scheduling task
// or double-carriage assignment.
const DefaultSpeed = 0.4

// ScheTask records a temporary-scheduling cycle's in-flight fields, valid
// while Elevator.Mode is one of SchePending, ScheMoving, ScheStopping.
type ScheTask struct {
	Target     floor.Index
	Speed      float64
	AcceptTime float64
	BeginTime  float64
	Arrives    int
}

// UpdateTask records a dual-shaft update cycle's in-flight fields, valid
// while Elevator.Mode is UpdatePending or Updating.
type UpdateTask struct {
	Partner    int
	Target     floor.Index
	AcceptTime float64
	BeginTime  float64
	Arrives    int
}

// DoubleCarriage records a completed update's permanent carriage role,
// valid while Elevator.Mode is DoubleA or DoubleB.
type DoubleCarriage struct {
	Partner int
	Role    Mode
	Range   floor.Range
}

// Elevator is the authoritative record for one of the six elevator ids.
type Elevator struct {
	ID         int
	Floor      floor.Index
	DoorOpen   bool
	Passengers map[int]bool
	Speed      float64
	Mode       Mode
	Range      floor.Range

	LastAction float64
	LastArrive float64
	LastOpen   float64
	LastClose  float64

	Sche   *ScheTask
	Update *UpdateTask
	Double *DoubleCarriage

	// HadSche/HadUpdate record whether this id has ever been through a SCHE
	// or UPDATE accept, gating eligibility for the other.
	HadSche   bool
	HadUpdate bool
}

func newElevator(id int) *Elevator {
	return &Elevator{
		ID:         id,
		Floor:      floor.MustParse("F1"),
		Speed:      DefaultSpeed,
		Mode:       Normal,
		Range:      floor.Full,
		Passengers: make(map[int]bool),
	}
}

// Occupancy returns the number of passengers currently inside.
func (e *Elevator) Occupancy() int {
	return len(e.Passengers)
}
