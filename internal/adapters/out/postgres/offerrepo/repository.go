package offerrepo

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOfferRepository implements OfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOfferRepository creates a new GORM offer repository.
func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new offer to the database.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("offer", aggregate.ID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing offer to the database.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByCourierAndQuote retrieves the courier's live offer on the given
// quote. A missing row is not an error: it just means submit should create
// rather than update.
func (r *GormOfferRepository) GetPendingByCourierAndQuote(
	ctx context.Context, courierID, quoteID kernel.UUID,
) (*offer.Offer, error) {
	if err := errors.Join(courierID.Validate(), quoteID.Validate()); err != nil {
		return nil, err
	}

	var dto OfferDTO
	err := r.db.WithContext(ctx).
		First(&dto, "courier_id = ? AND quote_id = ? AND status = ?",
			courierID.Bytes(), quoteID.Bytes(), int(offer.Pending)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByQuote retrieves every offer on the given quote.
func (r *GormOfferRepository) GetAllByQuote(ctx context.Context, quoteID kernel.UUID) ([]*offer.Offer, error) {
	if err := quoteID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OfferDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "quote_id = ?", quoteID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPendingExpiredBefore retrieves pending offers whose expiry is at or
// before the given instant.
func (r *GormOfferRepository) GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND expires_at <= ?", int(offer.Pending), t).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// DeleteByQuote removes every offer on the given quote. Zero rows is a no-op.
func (r *GormOfferRepository) DeleteByQuote(ctx context.Context, quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&OfferDTO{}, "quote_id = ?", quoteID.Bytes()).Error
}

// Delete removes one offer row. Zero rows is a no-op.
func (r *GormOfferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&OfferDTO{}, "id = ?", id.Bytes()).Error
}

func toDomainSlice(dtos []OfferDTO) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, nil
}
