package runrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRunRepository implements ports.RunRepository using GORM.
type GormRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRunRepository {
	return &GormRunRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the run and its assignments in one statement batch.
func (r *GormRunRepository) Add(ctx context.Context, aggregate *run.Run) error {
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

// Get retrieves a run with its assignments.
func (r *GormRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	if err := r.withAssignments(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatest retrieves the most recently created run.
func (r *GormRunRepository) GetLatest(ctx context.Context) (*run.Run, error) {
	var dto RunDTO
	if err := r.withAssignments(ctx).
		Order("created_at DESC, id").
		Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", "latest")
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRunRepository) withAssignments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
