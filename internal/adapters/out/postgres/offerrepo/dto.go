// Package offerrepo provides data transfer objects and mapping functions for
// offer persistence.
package offerrepo

import (
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO represents the database structure for persisting offer aggregates.
// The composite unique index backs the one-offer-per-courier-per-quote
// invariant at the storage level.
type OfferDTO struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID                uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_offers_courier_quote"`
	QuoteID                  uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_offers_courier_quote"`
	ProposedPrice            int64
	EstimatedDurationSeconds *int64
	VehicleID                *uuid.UUID `gorm:"type:uuid"`
	Status                   int        `gorm:"index"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
	ExpiresAt                time.Time `gorm:"index"`
}

// TableName specifies the database table name for offer entities.
func (OfferDTO) TableName() string {
	return "offers"
}

// fromDomain converts an offer domain aggregate to its database representation.
func fromDomain(aggregate *offer.Offer) OfferDTO {
	var durationSeconds *int64
	if d := aggregate.EstimatedDuration(); d != nil {
		s := int64(d.Seconds())
		durationSeconds = &s
	}

	var vehicleID *uuid.UUID
	if v := aggregate.VehicleID(); v != nil {
		raw := v.Bytes()
		vehicleID = &raw
	}

	return OfferDTO{
		ID:                       aggregate.ID().Bytes(),
		CourierID:                aggregate.CourierID().Bytes(),
		QuoteID:                  aggregate.QuoteID().Bytes(),
		ProposedPrice:            aggregate.ProposedPrice().Amount(),
		EstimatedDurationSeconds: durationSeconds,
		VehicleID:                vehicleID,
		Status:                   int(aggregate.Status()),
		CreatedAt:                aggregate.CreatedAt(),
		UpdatedAt:                aggregate.UpdatedAt(),
		ExpiresAt:                aggregate.ExpiresAt(),
	}
}

// toDomain converts a database DTO to an offer domain aggregate.
func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	quoteID, err := kernel.UUIDFromBytes(dto.QuoteID[:])
	if err != nil {
		return nil, err
	}

	var estimatedDuration *time.Duration
	if dto.EstimatedDurationSeconds != nil {
		d := time.Duration(*dto.EstimatedDurationSeconds) * time.Second
		estimatedDuration = &d
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	price, err := kernel.NewPrice(dto.ProposedPrice)
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(
		id,
		courierID,
		quoteID,
		price,
		estimatedDuration,
		vehicleID,
		offer.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.ExpiresAt,
	)
}
