package domain

// ShipmentState is the carrier-integration sub-state of an order. It advances
// strictly forward through the booking steps; StateError is reachable from
// anywhere and is left only by an explicit manual re-run.
type ShipmentState string

const (
	ShipmentPending         ShipmentState = "pending"
	ShipmentCreated         ShipmentState = "created"
	ShipmentAWBAssigned     ShipmentState = "awb_assigned"
	ShipmentLabelGenerated  ShipmentState = "label_generated"
	ShipmentPickupScheduled ShipmentState = "pickup_scheduled"
	ShipmentError           ShipmentState = "error"
)

// shipmentRank orders the forward progression. ShipmentError is deliberately
// absent; it sits outside the ladder.
var shipmentRank = map[ShipmentState]int{
	ShipmentPending:         0,
	ShipmentCreated:         1,
	ShipmentAWBAssigned:     2,
	ShipmentLabelGenerated:  3,
	ShipmentPickupScheduled: 4,
}

// CanTransition reports whether moving from s to next is a legal transition:
// forward-only on the ladder, ShipmentError reachable from any state, and a
// re-run out of ShipmentError may re-enter the ladder anywhere past pending.
func (s ShipmentState) CanTransition(next ShipmentState) bool {
	if next == ShipmentError {
		return true
	}
	if s == ShipmentError {
		return next != ShipmentPending
	}
	from, okFrom := shipmentRank[s]
	to, okTo := shipmentRank[next]
	if !okFrom || !okTo {
		return false
	}
	return to > from
}

// Terminal reports whether the booking workflow is finished for this state.
func (s ShipmentState) Terminal() bool {
	return s == ShipmentPickupScheduled
}
