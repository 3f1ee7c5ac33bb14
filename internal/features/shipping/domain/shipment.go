package domain

import "time"

// BookingRequest is the provider-neutral payload for creating a remote
// shipment order. The carrier adapter maps it onto the provider's schema;
// provider field names never leak past the adapter.
type BookingRequest struct {
	// Reference is the local order id, echoed back by the provider.
	Reference string
	// OrderDate is when the order was placed.
	OrderDate time.Time
	// PickupLocation is the registered warehouse name at the aggregator.
	PickupLocation string
	// Recipient is the delivery destination.
	Recipient Recipient
	// Items are the shipment contents.
	Items []BookingItem
	// COD is true when the courier collects payment on delivery.
	COD bool
	// SubTotal is the declared order value.
	SubTotal float64
	// Length, Breadth, Height are package dimensions in cm; Weight in kg.
	Length, Breadth, Height, Weight float64
}

// Recipient is the delivery contact for a booking.
type Recipient struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	Pincode   string
	Country   string
	Phone     string
	Email     string
}

// BookingItem is one product line inside a booking.
type BookingItem struct {
	Name         string
	SKU          string
	Units        int
	SellingPrice float64
}

// RemoteOrder holds the identifiers the aggregator assigns to a new booking.
type RemoteOrder struct {
	// OrderID is the aggregator-side order id.
	OrderID int64
	// ShipmentID is the aggregator-side shipment id, input for every later step.
	ShipmentID int64
}

// CourierOption is one serviceable courier, as ranked by the provider.
type CourierOption struct {
	// CourierID is the provider's courier company id.
	CourierID int64
	// Name is the courier display name.
	Name string
	// Rate is the quoted freight charge.
	Rate float64
	// EstimatedDays is the provider's delivery estimate, free-form.
	EstimatedDays string
}

// AWBAssignment is the waybill issued for a shipment.
type AWBAssignment struct {
	AWBCode     string
	CourierID   int64
	CourierName string
}

// PickupConfirmation is the scheduled carrier pickup.
type PickupConfirmation struct {
	// Status is the provider's pickup status ("scheduled" when unspecified).
	Status string
	// Date is the day the courier will collect the shipment.
	Date time.Time
}

// TrackingPayload is the normalized tracking state of one shipment.
type TrackingPayload struct {
	// CurrentStatus is the latest carrier status label.
	CurrentStatus string `json:"currentStatus"`
	// CourierName is the carrier reporting the events.
	CourierName string `json:"courierName,omitempty"`
	// ETA is the carrier's delivery estimate, free-form.
	ETA string `json:"eta,omitempty"`
	// Events are the carrier scan events, oldest first as delivered by the provider.
	Events []TrackingActivity `json:"events"`
}

// TrackingActivity is a single carrier scan event.
type TrackingActivity struct {
	Date     time.Time `json:"date"`
	Activity string    `json:"activity"`
	Location string    `json:"location,omitempty"`
	Status   string    `json:"status,omitempty"`
}
