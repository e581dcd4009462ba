package commands

import (
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/domain/model/quote"
)

// Broadcast payloads are snapshots of aggregate state taken before any row
// deletion, so an event remains serializable after the entity it describes
// is gone. They are the wire shape of the realtime `data` field.

// QuotePayload is the broadcast representation of a quote.
type QuotePayload struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	CorrelationID   string    `json:"correlation_id"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	CategoryID      string    `json:"category_id"`
	Description     string    `json:"description,omitempty"`
	Observations    []string  `json:"observations"`
	VehicleTypeID   *string   `json:"vehicle_type_id,omitempty"`
	EstimatedWeight *float64  `json:"estimated_weight,omitempty"`
	EstimatedSize   *string   `json:"estimated_size,omitempty"`
	ClientPrice     int64     `json:"client_price"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// NewQuotePayload snapshots a quote for broadcasting.
func NewQuotePayload(q *quote.Quote) QuotePayload {
	details := q.Details()

	var vehicleTypeID *string
	if details.VehicleTypeID != nil {
		s := details.VehicleTypeID.String()
		vehicleTypeID = &s
	}

	return QuotePayload{
		ID:              q.ID().String(),
		ClientID:        q.ClientID().String(),
		CorrelationID:   q.CorrelationID().String(),
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		CategoryID:      details.CategoryID.String(),
		Description:     details.Description,
		Observations:    details.Observations,
		VehicleTypeID:   vehicleTypeID,
		EstimatedWeight: details.EstimatedWeight,
		EstimatedSize:   details.EstimatedSize,
		ClientPrice:     q.ClientPrice().Amount(),
		PaymentMethod:   q.PaymentMethod().String(),
		Status:          q.Status().String(),
		CreatedAt:       q.CreatedAt(),
		ExpiresAt:       q.ExpiresAt(),
	}
}

// OfferPayload is the broadcast representation of an offer.
type OfferPayload struct {
	ID                       string    `json:"id"`
	QuoteID                  string    `json:"quote_id"`
	CourierID                string    `json:"courier_id"`
	ProposedPrice            int64     `json:"proposed_price"`
	EstimatedDurationSeconds *int64    `json:"estimated_duration_seconds,omitempty"`
	VehicleID                *string   `json:"vehicle_id,omitempty"`
	Status                   string    `json:"status"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
	ExpiresAt                time.Time `json:"expires_at"`
}

// NewOfferPayload snapshots an offer for broadcasting.
func NewOfferPayload(o *offer.Offer) OfferPayload {
	var durationSeconds *int64
	if d := o.EstimatedDuration(); d != nil {
		s := int64(d.Seconds())
		durationSeconds = &s
	}

	var vehicleID *string
	if v := o.VehicleID(); v != nil {
		s := v.String()
		vehicleID = &s
	}

	return OfferPayload{
		ID:                       o.ID().String(),
		QuoteID:                  o.QuoteID().String(),
		CourierID:                o.CourierID().String(),
		ProposedPrice:            o.ProposedPrice().Amount(),
		EstimatedDurationSeconds: durationSeconds,
		VehicleID:                vehicleID,
		Status:                   o.Status().String(),
		CreatedAt:                o.CreatedAt(),
		UpdatedAt:                o.UpdatedAt(),
		ExpiresAt:                o.ExpiresAt(),
	}
}

// DeliveryPayload is the broadcast representation of a delivery.
type DeliveryPayload struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	CourierID       string     `json:"courier_id"`
	CorrelationID   string     `json:"correlation_id"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	CategoryID      string     `json:"category_id"`
	Description     string     `json:"description,omitempty"`
	Observations    []string   `json:"observations"`
	EstimatedWeight *float64   `json:"estimated_weight,omitempty"`
	EstimatedSize   *string    `json:"estimated_size,omitempty"`
	FinalPrice      int64      `json:"final_price"`
	VehicleID       *string    `json:"vehicle_id,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// NewDeliveryPayload snapshots a delivery for broadcasting.
func NewDeliveryPayload(d *delivery.Delivery) DeliveryPayload {
	details := d.Details()

	var vehicleID *string
	if v := d.VehicleID(); v != nil {
		s := v.String()
		vehicleID = &s
	}

	return DeliveryPayload{
		ID:              d.ID().String(),
		ClientID:        d.ClientID().String(),
		CourierID:       d.CourierID().String(),
		CorrelationID:   d.CorrelationID().String(),
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		CategoryID:      details.CategoryID.String(),
		Description:     details.Description,
		Observations:    details.Observations,
		EstimatedWeight: details.EstimatedWeight,
		EstimatedSize:   details.EstimatedSize,
		FinalPrice:      d.FinalPrice().Amount(),
		VehicleID:       vehicleID,
		Status:          d.Status().String(),
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
		CompletedAt:     d.CompletedAt(),
		CancelledAt:     d.CancelledAt(),
	}
}
