// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence.
package deliveryrepo

import (
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Deliveries are never deleted, so the correlation id index
// serves the stats and history queries for the life of the row.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index"`
	CourierID       uuid.UUID  `gorm:"type:uuid;index"`
	CorrelationID   uuid.UUID  `gorm:"type:uuid;index"`
	PickupAddress   string     `gorm:"type:text"`
	DeliveryAddress string     `gorm:"type:text"`
	CategoryID      uuid.UUID  `gorm:"type:uuid"`
	Description     string     `gorm:"type:text"`
	Observations    []string   `gorm:"serializer:json"`
	EstimatedWeight *float64
	EstimatedSize   *string
	FinalPrice      int64
	VehicleID       *uuid.UUID `gorm:"type:uuid"`
	Status          int        `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	details := aggregate.Details()

	var vehicleID *uuid.UUID
	if v := aggregate.VehicleID(); v != nil {
		raw := v.Bytes()
		vehicleID = &raw
	}

	return DeliveryDTO{
		ID:              aggregate.ID().Bytes(),
		ClientID:        aggregate.ClientID().Bytes(),
		CourierID:       aggregate.CourierID().Bytes(),
		CorrelationID:   aggregate.CorrelationID().Bytes(),
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		CategoryID:      details.CategoryID.Bytes(),
		Description:     details.Description,
		Observations:    details.Observations,
		EstimatedWeight: details.EstimatedWeight,
		EstimatedSize:   details.EstimatedSize,
		FinalPrice:      aggregate.FinalPrice().Amount(),
		VehicleID:       vehicleID,
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		CompletedAt:     aggregate.CompletedAt(),
		CancelledAt:     aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
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

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	price, err := kernel.NewPrice(dto.FinalPrice)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		clientID,
		courierID,
		correlationID,
		delivery.Details{
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
			CategoryID:      categoryID,
			Description:     dto.Description,
			Observations:    dto.Observations,
			EstimatedWeight: dto.EstimatedWeight,
			EstimatedSize:   dto.EstimatedSize,
		},
		price,
		vehicleID,
		delivery.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
		dto.CancelledAt,
	)
}
