package service

import (
	"encoding/json"
	"strings"

	"github.com/hyelabel/shop-backend/internal/model"
)

// OptionalString distinguishes an absent JSON key from an explicit
// null. Carrier and tracking number need all three states: untouched,
// overwritten, cleared.
type OptionalString struct {
	Present bool
	Value   *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// normalized maps empty and whitespace-only strings to nil so the
// column is cleared rather than stored as "".
func (o OptionalString) normalized() *string {
	if o.Value == nil {
		return nil
	}
	v := strings.TrimSpace(*o.Value)
	if v == "" {
		return nil
	}
	return &v
}

// OrderPatch is an admin status-update request after JSON decoding.
// Nil pointers mean the field was not part of the request.
type OrderPatch struct {
	PaymentStatus     *string        `json:"paymentStatus"`
	FulfillmentStatus *string        `json:"fulfillmentStatus"`
	ShippingCarrier   OptionalString `json:"shippingCarrier"`
	TrackingNumber    OptionalString `json:"trackingNumber"`
}

// validatePatch is the single gate every order mutation passes through.
// It validates the whole patch against the order's current state and
// returns the column set to apply, or an error and no changes at all.
func validatePatch(o *model.Order, p OrderPatch) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	effectivePayment := o.PaymentStatus
	if p.PaymentStatus != nil {
		ps := model.PaymentStatus(*p.PaymentStatus)
		if !ps.Valid() {
			return nil, ErrInvalidPaymentStatus
		}
		effectivePayment = ps
		fields["payment_status"] = ps
	}

	effectiveTracking := o.TrackingNumber
	if p.TrackingNumber.Present {
		effectiveTracking = p.TrackingNumber.normalized()
		fields["tracking_number"] = effectiveTracking
	}
	if p.ShippingCarrier.Present {
		fields["shipping_carrier"] = p.ShippingCarrier.normalized()
	}

	if p.FulfillmentStatus != nil {
		fs := model.FulfillmentStatus(*p.FulfillmentStatus)
		if !fs.Valid() {
			return nil, ErrInvalidFulfillmentStatus
		}
		if fs == model.FulfillmentShipped {
			// The paid/tracking gate outranks the transition table: shipping
			// an unpaid order reports the payment problem even when the move
			// itself would also be illegal. Payment is resolved against the
			// same request, so a patch may mark PAID and SHIPPED together.
			if effectivePayment != model.PaymentPaid {
				return nil, ErrShipmentRequiresPaid
			}
			if effectiveTracking == nil {
				return nil, ErrTrackingRequired
			}
		}
		if !model.CanTransition(o.FulfillmentStatus, fs) {
			return nil, ErrInvalidTransition
		}
		fields["fulfillment_status"] = fs
	}

	return fields, nil
}
