package domain

import "errors"

// Carrier failure categories. Adapters wrap these with the provider's
// original message so operators see exactly what the aggregator reported.
var (
	// ErrAuth means no bearer token could be obtained.
	ErrAuth = errors.New("carrier authentication failed")
	// ErrCreateOrder means the aggregator rejected the booking.
	ErrCreateOrder = errors.New("carrier order creation failed")
	// ErrServiceability means the serviceability lookup itself failed.
	// An empty courier list is not this error; it is a valid result.
	ErrServiceability = errors.New("serviceability check failed")
	// ErrAssignAWB means the provider refused to issue a waybill.
	ErrAssignAWB = errors.New("awb assignment failed")
	// ErrGenerateLabel means label generation failed.
	ErrGenerateLabel = errors.New("label generation failed")
	// ErrSchedulePickup means pickup scheduling failed.
	ErrSchedulePickup = errors.New("pickup scheduling failed")
)
