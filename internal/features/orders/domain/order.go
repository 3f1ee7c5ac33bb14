package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation marks a malformed checkout input, rejected before any store write.
var ErrValidation = errors.New("validation failed")

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	// PaymentMethodCOD is cash on delivery; funds are collected by the courier.
	PaymentMethodCOD PaymentMethod = "COD"
	// PaymentMethodPrepaid is an online payment captured through the gateway.
	PaymentMethodPrepaid PaymentMethod = "Prepaid"
)

// OrderStatus is the customer-visible fulfillment stage.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Order Placed"
	OrderStatusPacking        OrderStatus = "Packing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "Out for delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCanceled       OrderStatus = "Canceled"
)

// ValidStatus reports whether s is one of the known fulfillment stages.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPacking, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// LineItem is an immutable snapshot of a product at checkout time.
// Catalog changes must not retroactively alter a placed order.
type LineItem struct {
	// ProductID references the catalog product.
	ProductID string `bson:"productId" json:"productId"`
	// Name is the product name at checkout time.
	Name string `bson:"name" json:"name"`
	// SKU is the stock keeping unit, if the catalog carries one.
	SKU string `bson:"sku,omitempty" json:"sku,omitempty"`
	// Price is the unit price at checkout time.
	Price float64 `bson:"price" json:"price"`
	// Quantity is the number of units ordered.
	Quantity int `bson:"quantity" json:"quantity"`
	// Weight is the per-unit weight in kg; zero means unknown.
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// Address is the shipping destination snapshot, immutable once placed.
type Address struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	Zipcode   string `bson:"zipcode" json:"zipcode"`
	Country   string `bson:"country" json:"country"`
	Phone     string `bson:"phone" json:"phone"`
	Email     string `bson:"email" json:"email"`
}

// Validate checks that every field needed for carrier booking is present.
func (a Address) Validate() error {
	fields := map[string]string{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"street":    a.Street,
		"city":      a.City,
		"state":     a.State,
		"zipcode":   a.Zipcode,
		"country":   a.Country,
		"phone":     a.Phone,
		"email":     a.Email,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: missing address field %s", ErrValidation, name)
		}
	}
	return nil
}

// Dimensions is the shipment size/weight snapshot used for carrier booking.
type Dimensions struct {
	Length  float64 `bson:"length" json:"length"`
	Breadth float64 `bson:"breadth" json:"breadth"`
	Height  float64 `bson:"height" json:"height"`
	Weight  float64 `bson:"weight" json:"weight"`
}

const (
	defaultSide = 10
	// MinWeight is the smallest bookable shipment weight in kg; also the
	// per-unit fallback when an item declares no weight.
	MinWeight = 0.5
)

// DefaultDimensions returns a 10x10x10 box carrying the given weight.
func DefaultDimensions(weight float64) Dimensions {
	return Dimensions{Length: defaultSide, Breadth: defaultSide, Height: defaultSide, Weight: weight}
}

// TotalWeight derives the shipment weight from the line items. Items without
// a declared weight count MinWeight per unit; the result is floored at MinWeight.
func TotalWeight(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		w := item.Weight
		if w == 0 {
			w = MinWeight
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		sum += w * float64(qty)
	}
	if sum < MinWeight {
		return MinWeight
	}
	return sum
}

// TrackingEvent is one entry of the append-only tracking history.
type TrackingEvent struct {
	Status      string    `bson:"status" json:"status"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	EventDetail string    `bson:"eventDetail,omitempty" json:"eventDetail,omitempty"`
}

// Order represents one checkout transaction.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"orderId"`
	UserID        string             `bson:"userId" json:"userId"`
	Items         []LineItem         `bson:"items" json:"items"`
	Amount        float64            `bson:"amount" json:"amount"`
	Address       Address            `bson:"address" json:"address"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	// Payment is true once the gateway confirmed capture (prepaid) or an
	// operator recorded settlement (COD).
	Payment bool        `bson:"payment" json:"payment"`
	Status  OrderStatus `bson:"status" json:"status"`
	// Dimensions is the booking payload sent to the carrier.
	Dimensions Dimensions `bson:"dimensions" json:"dimensions"`

	// Carrier integration fields. Identifiers, once assigned, are never
	// cleared by a later failure.
	ShiprocketOrderID    int64  `bson:"shiprocketOrderId,omitempty" json:"shiprocketOrderId,omitempty"`
	ShiprocketShipmentID int64  `bson:"shiprocketShipmentId,omitempty" json:"shiprocketShipmentId,omitempty"`
	AWBCode              string `bson:"awbCode,omitempty" json:"awbCode,omitempty"`
	CourierID            int64  `bson:"courierId,omitempty" json:"courierId,omitempty"`
	CourierName          string `bson:"courierName,omitempty" json:"courierName,omitempty"`
	TrackingURL          string `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
	LabelURL             string `bson:"labelUrl,omitempty" json:"labelUrl,omitempty"`
	ManifestURL          string `bson:"manifestUrl,omitempty" json:"manifestUrl,omitempty"`

	PickupScheduled bool      `bson:"pickupScheduled" json:"pickupScheduled"`
	PickupDate      time.Time `bson:"pickupDate,omitempty" json:"pickupDate,omitempty"`
	PickupStatus    string    `bson:"pickupStatus,omitempty" json:"pickupStatus,omitempty"`

	// ShipmentState is the internal integration progress, distinct from Status.
	ShipmentState ShipmentState `bson:"shiprocketStatus" json:"shiprocketStatus"`
	// ShipmentError holds the last booking failure message.
	ShipmentError string `bson:"shiprocketError,omitempty" json:"shiprocketError,omitempty"`

	TrackingHistory []TrackingEvent `bson:"trackingHistory,omitempty" json:"trackingHistory,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the checkout input before the order is written.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrValidation)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for i, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has non-positive quantity", ErrValidation, i)
		}
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: non-positive amount", ErrValidation)
	}
	return o.Address.Validate()
}

// HasRemoteShipment reports whether any carrier identifier exists yet.
func (o *Order) HasRemoteShipment() bool {
	return o.ShiprocketOrderID != 0 || o.AWBCode != ""
}
