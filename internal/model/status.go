package model

type PaymentStatus string

const (
	PaymentCreated              PaymentStatus = "CREATED"
	PaymentPaid                 PaymentStatus = "PAID"
	PaymentVirtualAccountIssued PaymentStatus = "VIRTUAL_ACCOUNT_ISSUED"
	PaymentCancelled            PaymentStatus = "CANCELLED"
	PaymentFailed               PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentCreated, PaymentPaid, PaymentVirtualAccountIssued, PaymentCancelled, PaymentFailed:
		return true
	}
	return false
}

type FulfillmentStatus string

const (
	FulfillmentNew      FulfillmentStatus = "NEW"
	FulfillmentPacking  FulfillmentStatus = "PACKING"
	FulfillmentShipped  FulfillmentStatus = "SHIPPED"
	FulfillmentRefunded FulfillmentStatus = "REFUNDED"
)

func (s FulfillmentStatus) Valid() bool {
	switch s {
	case FulfillmentNew, FulfillmentPacking, FulfillmentShipped, FulfillmentRefunded:
		return true
	}
	return false
}

// fulfillmentNext lists the legal forward moves and reversals.
// PACKING→NEW and SHIPPED→PACKING are the "cancel shipment" paths;
// REFUNDED is terminal and reachable from anywhere.
var fulfillmentNext = map[FulfillmentStatus]map[FulfillmentStatus]bool{
	FulfillmentNew:      {FulfillmentPacking: true, FulfillmentRefunded: true},
	FulfillmentPacking:  {FulfillmentNew: true, FulfillmentShipped: true, FulfillmentRefunded: true},
	FulfillmentShipped:  {FulfillmentPacking: true, FulfillmentRefunded: true},
	FulfillmentRefunded: {},
}

// CanTransition reports whether from→to is a legal fulfillment move.
// Re-applying the current status is always allowed so that repeating a
// patch is a no-op rather than an error.
func CanTransition(from, to FulfillmentStatus) bool {
	if from == to {
		return true
	}
	return fulfillmentNext[from][to]
}
