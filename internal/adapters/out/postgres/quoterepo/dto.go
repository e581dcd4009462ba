// Package quoterepo provides data transfer objects and mapping functions for
// quote persistence. Implements the repository pattern for the quote domain
// aggregate, handling the conversion between domain entities and database
// representations.
package quoterepo

import (
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"

	"github.com/google/uuid"
)

// QuoteDTO represents the database structure for persisting quote aggregates.
// Status and expiry are indexed: the sweeper scans by both on every pass.
type QuoteDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index"`
	CorrelationID   uuid.UUID  `gorm:"type:uuid;index"`
	PickupAddress   string     `gorm:"type:text"`
	DeliveryAddress string     `gorm:"type:text"`
	CategoryID      uuid.UUID  `gorm:"type:uuid"`
	Description     string     `gorm:"type:text"`
	Observations    []string   `gorm:"serializer:json"`
	VehicleTypeID   *uuid.UUID `gorm:"type:uuid"`
	EstimatedWeight *float64
	EstimatedSize   *string
	ClientPrice     int64
	PaymentMethod   int
	Status          int `gorm:"index"`
	CreatedAt       time.Time
	ExpiresAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for quote entities.
func (QuoteDTO) TableName() string {
	return "quotes"
}

// fromDomain converts a quote domain aggregate to its database representation.
func fromDomain(aggregate *quote.Quote) QuoteDTO {
	details := aggregate.Details()

	var vehicleTypeID *uuid.UUID
	if details.VehicleTypeID != nil {
		raw := details.VehicleTypeID.Bytes()
		vehicleTypeID = &raw
	}

	return QuoteDTO{
		ID:              aggregate.ID().Bytes(),
		ClientID:        aggregate.ClientID().Bytes(),
		CorrelationID:   aggregate.CorrelationID().Bytes(),
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		CategoryID:      details.CategoryID.Bytes(),
		Description:     details.Description,
		Observations:    details.Observations,
		VehicleTypeID:   vehicleTypeID,
		EstimatedWeight: details.EstimatedWeight,
		EstimatedSize:   details.EstimatedSize,
		ClientPrice:     aggregate.ClientPrice().Amount(),
		PaymentMethod:   int(aggregate.PaymentMethod()),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		ExpiresAt:       aggregate.ExpiresAt(),
	}
}

// toDomain converts a database DTO to a quote domain aggregate.
func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	correlationID, err := kernel.UUIDFromBytes(dto.CorrelationID[:])
	if err != nil {
		return nil, err
	}

	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	var vehicleTypeID *kernel.UUID
	if dto.VehicleTypeID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleTypeID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleTypeID = &vID
	}

	price, err := kernel.NewPrice(dto.ClientPrice)
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(
		id,
		clientID,
		correlationID,
		quote.Details{
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
			CategoryID:      categoryID,
			Description:     dto.Description,
			Observations:    dto.Observations,
			VehicleTypeID:   vehicleTypeID,
			EstimatedWeight: dto.EstimatedWeight,
			EstimatedSize:   dto.EstimatedSize,
		},
		price,
		quote.PaymentMethod(dto.PaymentMethod),
		quote.Status(dto.Status),
		dto.CreatedAt,
		dto.ExpiresAt,
	)
}
