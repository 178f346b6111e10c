package service

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidOrder wraps checkout validation failures so handlers can
	// report them as 400 without matching message strings.
	ErrInvalidOrder = errors.New("invalid order request")

	// ErrOrderNoExhausted means five consecutive order-number candidates
	// collided. Reported separately from storage failures so operators
	// can alert on numbering pressure.
	ErrOrderNoExhausted = errors.New("order number generation exhausted")

	ErrInvalidPaymentStatus     = errors.New("invalid payment status")
	ErrInvalidFulfillmentStatus = errors.New("invalid fulfillment status")
	ErrInvalidTransition        = errors.New("illegal fulfillment transition")
	ErrShipmentRequiresPaid     = errors.New("shipment requires a paid order")
	ErrTrackingRequired         = errors.New("tracking number required before shipment")

	ErrInvalidLookup = errors.New("invalid lookup request")
	ErrPhoneMismatch = errors.New("phone digits do not match")
)
