// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain model and project raw rows into read models
// shared by the HTTP API and the realtime snapshot pushes.
package queries

import (
	"database/sql"
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/domain/model/quote"

	"github.com/google/uuid"
)

// QuoteView is the read model of one quote, optionally with its offers.
type QuoteView struct {
	ID              string      `json:"id"`
	ClientID        string      `json:"client_id"`
	CorrelationID   string      `json:"correlation_id"`
	PickupAddress   string      `json:"pickup_address"`
	DeliveryAddress string      `json:"delivery_address"`
	CategoryID      string      `json:"category_id"`
	Description     string      `json:"description,omitempty"`
	ClientPrice     int64       `json:"client_price"`
	PaymentMethod   string      `json:"payment_method"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	ExpiresAt       time.Time   `json:"expires_at"`
	Offers          []OfferView `json:"offers,omitempty"`
}

// OfferView is the read model of one offer.
type OfferView struct {
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

// DeliveryView is the read model of one delivery.
type DeliveryView struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	CourierID       string     `json:"courier_id"`
	CorrelationID   string     `json:"correlation_id"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	CategoryID      string     `json:"category_id"`
	Description     string     `json:"description,omitempty"`
	FinalPrice      int64      `json:"final_price"`
	VehicleID       *string    `json:"vehicle_id,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// HistoryEventView is the read model of one history event.
type HistoryEventView struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	Kind          string    `json:"kind"`
	Description   string    `json:"description"`
	ChangedBy     string    `json:"changed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Column lists shared by the handlers. Keep the scan helpers below in sync.
const (
	quoteColumns = `id, client_id, correlation_id, pickup_address, delivery_address,
		category_id, description, client_price, payment_method, status, created_at, expires_at`

	offerColumns = `id, quote_id, courier_id, proposed_price, estimated_duration_seconds,
		vehicle_id, status, created_at, updated_at, expires_at`

	deliveryColumns = `id, client_id, courier_id, correlation_id, pickup_address, delivery_address,
		category_id, description, final_price, vehicle_id, status, created_at, updated_at,
		completed_at, cancelled_at`

	historyColumns = `id, correlation_id, kind, description, changed_by, created_at`
)

func scanQuoteView(rows *sql.Rows) (QuoteView, error) {
	var view QuoteView
	var id, clientID, correlationID, categoryID uuid.UUID
	var paymentMethod, status int

	if err := rows.Scan(
		&id,
		&clientID,
		&correlationID,
		&view.PickupAddress,
		&view.DeliveryAddress,
		&categoryID,
		&view.Description,
		&view.ClientPrice,
		&paymentMethod,
		&status,
		&view.CreatedAt,
		&view.ExpiresAt,
	); err != nil {
		return QuoteView{}, err
	}

	view.ID = id.String()
	view.ClientID = clientID.String()
	view.CorrelationID = correlationID.String()
	view.CategoryID = categoryID.String()
	view.PaymentMethod = quote.PaymentMethod(paymentMethod).String()
	view.Status = quote.Status(status).String()
	return view, nil
}

func scanOfferView(rows *sql.Rows) (OfferView, error) {
	var view OfferView
	var id, quoteID, courierID uuid.UUID
	var durationSeconds sql.NullInt64
	var vehicleID uuid.NullUUID
	var status int

	if err := rows.Scan(
		&id,
		&quoteID,
		&courierID,
		&view.ProposedPrice,
		&durationSeconds,
		&vehicleID,
		&status,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.ExpiresAt,
	); err != nil {
		return OfferView{}, err
	}

	view.ID = id.String()
	view.QuoteID = quoteID.String()
	view.CourierID = courierID.String()
	if durationSeconds.Valid {
		view.EstimatedDurationSeconds = &durationSeconds.Int64
	}
	if vehicleID.Valid {
		s := vehicleID.UUID.String()
		view.VehicleID = &s
	}
	view.Status = offer.Status(status).String()
	return view, nil
}

func scanDeliveryView(rows *sql.Rows) (DeliveryView, error) {
	var view DeliveryView
	var id, clientID, courierID, correlationID, categoryID uuid.UUID
	var vehicleID uuid.NullUUID
	var status int
	var completedAt, cancelledAt sql.NullTime

	if err := rows.Scan(
		&id,
		&clientID,
		&courierID,
		&correlationID,
		&view.PickupAddress,
		&view.DeliveryAddress,
		&categoryID,
		&view.Description,
		&view.FinalPrice,
		&vehicleID,
		&status,
		&view.CreatedAt,
		&view.UpdatedAt,
		&completedAt,
		&cancelledAt,
	); err != nil {
		return DeliveryView{}, err
	}

	view.ID = id.String()
	view.ClientID = clientID.String()
	view.CourierID = courierID.String()
	view.CorrelationID = correlationID.String()
	view.CategoryID = categoryID.String()
	if vehicleID.Valid {
		s := vehicleID.UUID.String()
		view.VehicleID = &s
	}
	view.Status = delivery.Status(status).String()
	if completedAt.Valid {
		view.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		view.CancelledAt = &cancelledAt.Time
	}
	return view, nil
}

func scanHistoryEventView(rows *sql.Rows) (HistoryEventView, error) {
	var view HistoryEventView
	var id, correlationID, changedBy uuid.UUID
	var kind int

	if err := rows.Scan(
		&id,
		&correlationID,
		&kind,
		&view.Description,
		&changedBy,
		&view.CreatedAt,
	); err != nil {
		return HistoryEventView{}, err
	}

	view.ID = id.String()
	view.CorrelationID = correlationID.String()
	view.ChangedBy = changedBy.String()
	view.Kind = history.Kind(kind).String()
	return view, nil
}
