package domain

// Status is an order's fulfillment state. It only ever moves forward
// through ProgressSequence or jumps to StatusCancelled; it never regresses.
type Status string

const (
	StatusReceived       Status = "received"
	StatusConfirmed      Status = "confirmed"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// ProgressSequence lists the states a freshly placed order walks through.
var ProgressSequence = []Status{
	StatusConfirmed,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
