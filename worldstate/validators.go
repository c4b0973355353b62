package worldstate

import (
	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/floor"
	"github.com/elevsim/judge/judgeerr"
)

func (w *World) elevator(id int, t float64) (*Elevator, error) {
	e, ok := w.Elevators[id]
	if !ok {
		return nil, judgeerr.New(judgeerr.OutputFormat, t, "", "unknown elevator id %d", id)
	}
	return e, nil
}

func (w *World) passenger(id int, t float64) (*Passenger, error) {
	p, ok := w.Passengers[id]
	if !ok {
		return nil, judgeerr.New(judgeerr.PassengerState, t, passengerSubject(id), "unknown passenger id %d", id)
	}
	return p, nil
}

func geTol(a, b float64) bool { return a-b >= -Tolerance }
func leTol(a, b float64) bool { return a-b <= Tolerance }
func eqTol(a, b float64) bool { return geTol(a, b) && leTol(a, b) }

func (w *World) applyArrive(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.DoorOpen {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "ARRIVE with door open")
	}
	if e.Mode == Updating || e.Mode == Disabled {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(e.ID), "ARRIVE while mode is %s", e.Mode)
	}
	if !floor.Adjacent(e.Floor, ev.Floor) {
		return judgeerr.New(judgeerr.MovementTiming, ev.Time, elevatorSubject(e.ID), "ARRIVE at %s not adjacent to current floor %s", ev.Floor, e.Floor)
	}
	if !e.Range.Contains(ev.Floor) {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "ARRIVE at %s outside valid range [%s,%s]", ev.Floor, e.Range.Min, e.Range.Max)
	}
	if !geTol(ev.Time-e.LastAction, e.Speed) {
		return judgeerr.New(judgeerr.MovementTiming, ev.Time, elevatorSubject(e.ID), "ARRIVE after only %.3fs, need >= speed %.1fs", ev.Time-e.LastAction, e.Speed)
	}
	if e.Double != nil {
		if err := w.checkDoubleCollision(e, ev.Floor, ev.Time); err != nil {
			return err
		}
	}

	e.Floor = ev.Floor
	e.LastArrive = ev.Time
	e.LastAction = ev.Time
	switch e.Mode {
	case SchePending:
		e.Sche.Arrives++
	case UpdatePending:
		e.Update.Arrives++
	}
	return nil
}

// checkDoubleCollision enforces that a double-carriage arrival keeps the B
// carriage strictly below its A partner on distinct floors.
func (w *World) checkDoubleCollision(e *Elevator, newFloor floor.Index, t float64) error {
	partner, ok := w.Elevators[e.Double.Partner]
	if !ok {
		return nil
	}
	var a, b *Elevator
	var aFloor, bFloor floor.Index
	if e.Mode == DoubleA {
		a, b = e, partner
		aFloor, bFloor = newFloor, partner.Floor
	} else {
		a, b = partner, e
		aFloor, bFloor = partner.Floor, newFloor
	}
	if bFloor >= aFloor {
		return judgeerr.New(judgeerr.UpdateProtocol, t, elevatorSubject(e.ID),
			"double carriage collision: B (elevator %d) at %s not strictly below A (elevator %d) at %s", b.ID, bFloor, a.ID, aFloor)
	}
	return nil
}

func (w *World) applyOpen(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.Floor != ev.Floor {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "OPEN at %s but elevator is at %s", ev.Floor, e.Floor)
	}
	if e.DoorOpen {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "OPEN while door already open")
	}
	if e.Mode == Updating || e.Mode == Disabled {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(e.ID), "OPEN while mode is %s", e.Mode)
	}
	if e.Mode == ScheMoving && e.Floor != e.Sche.Target {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "OPEN before reaching scheduled target %s", e.Sche.Target)
	}
	initialIdleOpen := ev.Time == 0 && ev.Floor == floor.MustParse("F1") && e.LastArrive == 0 && e.LastAction == 0
	if !initialIdleOpen && !geTol(ev.Time, e.LastArrive) {
		return judgeerr.New(judgeerr.MovementTiming, ev.Time, elevatorSubject(e.ID), "OPEN before the elevator's last ARRIVE at %.1f", e.LastArrive)
	}

	e.DoorOpen = true
	e.LastOpen = ev.Time
	e.LastAction = ev.Time
	if e.Mode == ScheMoving && e.Floor == e.Sche.Target {
		e.Mode = ScheStopping
	}
	return nil
}

func (w *World) applyClose(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.Floor != ev.Floor {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "CLOSE at %s but elevator is at %s", ev.Floor, e.Floor)
	}
	if !e.DoorOpen {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "CLOSE while door already closed")
	}
	if e.Mode == Disabled {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(e.ID), "CLOSE on a disabled elevator")
	}
	if !geTol(ev.Time-e.LastOpen, 0.4) {
		return judgeerr.New(judgeerr.MovementTiming, ev.Time, elevatorSubject(e.ID), "CLOSE after only %.3fs, need >= 0.4s", ev.Time-e.LastOpen)
	}
	if e.Mode == ScheStopping && !geTol(ev.Time-e.LastOpen, 1.0) {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "scheduling stop CLOSE after only %.3fs, need >= 1.0s", ev.Time-e.LastOpen)
	}

	e.DoorOpen = false
	e.LastClose = ev.Time
	e.LastAction = ev.Time
	return nil
}

func (w *World) applyIn(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	p, err := w.passenger(ev.Passenger, ev.Time)
	if err != nil {
		return err
	}
	if e.Floor != ev.Floor || !e.DoorOpen {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "IN at %s but elevator not open there", ev.Floor)
	}
	if e.Mode == ScheStopping {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "IN during mandatory scheduling stop")
	}
	if e.Occupancy() >= capacity {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "IN would exceed capacity %d", capacity)
	}
	a, ok := w.assignments[p.ID]
	if !ok || a.Elevator != e.ID || !geTol(ev.Time, a.ReceiveTime) {
		return judgeerr.New(judgeerr.AssignmentMissing, ev.Time, passengerSubject(p.ID), "IN without a live RECEIVE for elevator %d", e.ID)
	}
	if p.Status != Waiting || p.Elevator != e.ID {
		return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "IN but passenger is %s, not WAITING for elevator %d", p.Status, e.ID)
	}
	if p.CurrentFloor != ev.Floor {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, passengerSubject(p.ID), "IN at %s but passenger is at %s", ev.Floor, p.CurrentFloor)
	}

	e.Passengers[p.ID] = true
	p.Status = Inside
	delete(w.assignments, p.ID)
	return nil
}

func (w *World) applyOut(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	p, err := w.passenger(ev.Passenger, ev.Time)
	if err != nil {
		return err
	}
	if e.Floor != ev.Floor || !e.DoorOpen {
		return judgeerr.New(judgeerr.DoorOrElevatorPosition, ev.Time, elevatorSubject(e.ID), "OUT at %s but elevator not open there", ev.Floor)
	}
	if p.Status != Inside || p.Elevator != e.ID || !e.Passengers[p.ID] {
		return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "OUT but passenger is not inside elevator %d", e.ID)
	}

	delete(e.Passengers, p.ID)
	delete(w.assignments, p.ID)
	if ev.Success {
		if p.To != ev.Floor {
			return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "OUT-S at %s but destination is %s", ev.Floor, p.To)
		}
		p.Status = Completed
		p.CompletionTime = ev.Time
		p.CurrentFloor = ev.Floor
		p.Elevator = 0
		return nil
	}

	p.CurrentFloor = ev.Floor
	p.Elevator = 0
	if e.Mode == ScheStopping {
		p.Status = FailedOut
	} else {
		p.Status = Outside
	}
	return nil
}

func (w *World) applyReceive(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	p, err := w.passenger(ev.Passenger, ev.Time)
	if err != nil {
		return err
	}
	if p.Status != Outside && p.Status != FailedOut {
		return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "RECEIVE but passenger is %s", p.Status)
	}
	if !geTol(ev.Time, p.RequestTime) {
		return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "RECEIVE before request time %.1f", p.RequestTime)
	}
	if _, exists := w.assignments[p.ID]; exists {
		return judgeerr.New(judgeerr.PassengerState, ev.Time, passengerSubject(p.ID), "RECEIVE while an assignment is already active")
	}
	switch e.Mode {
	case ScheMoving, ScheStopping:
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "RECEIVE while mode is %s", e.Mode)
	case Updating, Disabled:
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(e.ID), "RECEIVE while mode is %s", e.Mode)
	}

	w.assignments[p.ID] = Assignment{Elevator: e.ID, ReceiveTime: ev.Time}
	p.Status = Waiting
	p.Elevator = e.ID
	p.LastReceive = ev.Time
	return nil
}

func (w *World) applyScheAccept(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.Mode != Normal {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-ACCEPT while mode is %s, want NORMAL", e.Mode)
	}
	if e.HadUpdate {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-ACCEPT on an elevator previously involved in UPDATE")
	}
	idx := w.matchSche(e.ID, ev.Speed, ev.Target, ev.Time)
	if idx < 0 {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-ACCEPT does not match any pending SCHE command")
	}
	w.scheConsumed[idx] = true

	e.Mode = SchePending
	e.Sche = &ScheTask{Target: ev.Target, Speed: ev.Speed, AcceptTime: ev.Time}
	e.LastAction = ev.Time
	e.HadSche = true
	return nil
}

func (w *World) matchSche(elevator int, speed float64, target floor.Index, t float64) int {
	for i, cmd := range w.scheCommands {
		if w.scheConsumed[i] {
			continue
		}
		if cmd.Elevator == elevator && cmd.Target == target && eqTol(cmd.Speed, speed) && leTol(absFloat(cmd.Time-t), Tolerance) {
			return i
		}
	}
	return -1
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func (w *World) applyScheBegin(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.Mode != SchePending {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-BEGIN while mode is %s, want SCHE_PENDING", e.Mode)
	}
	if e.DoorOpen {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-BEGIN with door open")
	}
	if e.Sche.Arrives > 2 {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-BEGIN after %d ARRIVEs since ACCEPT, want <= 2", e.Sche.Arrives)
	}

	e.Mode = ScheMoving
	e.Speed = e.Sche.Speed
	e.Sche.BeginTime = ev.Time
	e.LastAction = ev.Time
	w.cancelAssignments(e.ID)
	return nil
}

func (w *World) applyScheEnd(ev eventlog.Event) error {
	e, err := w.elevator(ev.Elevator, ev.Time)
	if err != nil {
		return err
	}
	if e.Mode != ScheStopping {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END while mode is %s, want SCHE_STOPPING", e.Mode)
	}
	if e.Occupancy() != 0 {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END with %d passenger(s) still aboard", e.Occupancy())
	}
	if e.DoorOpen {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END with door still open")
	}
	if e.Floor != e.Sche.Target {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END at %s, want scheduled target %s", e.Floor, e.Sche.Target)
	}
	if !geTol(ev.Time, e.LastClose) {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END before the terminating CLOSE at %.1f", e.LastClose)
	}
	if !leTol(ev.Time-e.Sche.AcceptTime, 6.0) {
		return judgeerr.New(judgeerr.SchedulingProtocol, ev.Time, elevatorSubject(e.ID), "SCHE-END %.3fs after ACCEPT, want <= 6.0s", ev.Time-e.Sche.AcceptTime)
	}

	e.Speed = DefaultSpeed
	e.Mode = Normal
	e.Sche = nil
	e.LastAction = ev.Time
	return nil
}

func (w *World) cancelAssignments(elevatorID int) {
	for pid, a := range w.assignments {
		if a.Elevator != elevatorID {
			continue
		}
		delete(w.assignments, pid)
		if p, ok := w.Passengers[pid]; ok {
			p.Status = Outside
			p.Elevator = 0
		}
	}
}

func (w *World) applyUpdateAccept(ev eventlog.Event) error {
	a, err := w.elevator(ev.A, ev.Time)
	if err != nil {
		return err
	}
	b, err := w.elevator(ev.B, ev.Time)
	if err != nil {
		return err
	}
	if a.Mode != Normal || b.Mode != Normal {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-ACCEPT requires both elevators NORMAL, got %s and %s", a.Mode, b.Mode)
	}
	if a.HadSche || a.HadUpdate || b.HadSche || b.HadUpdate {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-ACCEPT on an elevator already involved in a prior SCHE or UPDATE")
	}
	idx := w.matchUpdate(a.ID, b.ID, ev.Target, ev.Time)
	if idx < 0 {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-ACCEPT does not match any pending UPDATE command")
	}
	w.updateConsumed[idx] = true

	a.Mode, b.Mode = UpdatePending, UpdatePending
	a.Update = &UpdateTask{Partner: b.ID, Target: ev.Target, AcceptTime: ev.Time}
	b.Update = &UpdateTask{Partner: a.ID, Target: ev.Target, AcceptTime: ev.Time}
	a.LastAction, b.LastAction = ev.Time, ev.Time
	a.HadUpdate, b.HadUpdate = true, true
	return nil
}

func (w *World) matchUpdate(a, b int, target floor.Index, t float64) int {
	for i, cmd := range w.updateCommands {
		if w.updateConsumed[i] {
			continue
		}
		if cmd.A == a && cmd.B == b && cmd.Target == target && leTol(absFloat(cmd.Time-t), Tolerance) {
			return i
		}
	}
	return -1
}

func (w *World) applyUpdateBegin(ev eventlog.Event) error {
	a, err := w.elevator(ev.A, ev.Time)
	if err != nil {
		return err
	}
	b, err := w.elevator(ev.B, ev.Time)
	if err != nil {
		return err
	}
	if a.Mode != UpdatePending || b.Mode != UpdatePending {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-BEGIN requires both UPDATE_PENDING, got %s and %s", a.Mode, b.Mode)
	}
	if a.DoorOpen || b.DoorOpen {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-BEGIN with a door open")
	}
	if a.Occupancy() != 0 || b.Occupancy() != 0 {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-BEGIN with a non-empty car")
	}

	a.Update.BeginTime = ev.Time
	b.Update.BeginTime = ev.Time
	a.Mode, b.Mode = Updating, Updating
	a.LastAction, b.LastAction = ev.Time, ev.Time
	w.cancelAssignments(a.ID)
	w.cancelAssignments(b.ID)
	return nil
}

func (w *World) applyUpdateEnd(ev eventlog.Event) error {
	a, err := w.elevator(ev.A, ev.Time)
	if err != nil {
		return err
	}
	b, err := w.elevator(ev.B, ev.Time)
	if err != nil {
		return err
	}
	if a.Mode != Updating || b.Mode != Updating {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-END requires both UPDATING, got %s and %s", a.Mode, b.Mode)
	}
	if !geTol(ev.Time-a.Update.BeginTime, 1.0) {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-END only %.3fs after BEGIN, want >= 1.0s", ev.Time-a.Update.BeginTime)
	}
	if !leTol(ev.Time-a.Update.AcceptTime, 6.0) {
		return judgeerr.New(judgeerr.UpdateProtocol, ev.Time, elevatorSubject(a.ID), "UPDATE-END %.3fs after ACCEPT, want <= 6.0s", ev.Time-a.Update.AcceptTime)
	}

	target := a.Update.Target
	a.Mode = DoubleA
	a.Double = &DoubleCarriage{Partner: b.ID, Role: DoubleA, Range: floor.Range{Min: target, Max: floor.Max}}
	a.Floor = target + 1
	a.Speed = 0.2
	a.Range = a.Double.Range
	a.Update = nil

	b.Mode = DoubleB
	b.Double = &DoubleCarriage{Partner: a.ID, Role: DoubleB, Range: floor.Range{Min: floor.Min, Max: target}}
	b.Floor = target - 1
	b.Speed = 0.2
	b.Range = b.Double.Range
	b.Update = nil

	a.LastAction, b.LastAction = ev.Time, ev.Time
	return nil
}
