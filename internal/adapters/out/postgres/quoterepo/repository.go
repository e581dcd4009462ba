package quoterepo

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"
	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormQuoteRepository implements QuoteRepository using GORM.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new quote to the database.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing quote to the database.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a quote by ID.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingExpiredBefore retrieves pending quotes whose expiry is at or
// before the given instant.
func (r *GormQuoteRepository) GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*quote.Quote, error) {
	var dtos []QuoteDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND expires_at <= ?", int(quote.Pending), t).Error; err != nil {
		return nil, err
	}

	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// UpdateStatusIfPending atomically claims the quote's pending status. The
// conditional write is what serializes racing accepts, cancels, and sweeps;
// zero rows affected means the caller lost and must not proceed.
func (r *GormQuoteRepository) UpdateStatusIfPending(
	ctx context.Context, id kernel.UUID, status quote.Status,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(quote.Pending)).
		Update("status", int(status))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Delete removes the quote row. Zero rows is a no-op so racing removal paths
// stay safe.
func (r *GormQuoteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&QuoteDTO{}, "id = ?", id.Bytes()).Error
}
