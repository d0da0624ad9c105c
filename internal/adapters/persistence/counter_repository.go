package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
)

// GormCounterRepository implements colony.CounterRepository using GORM
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GORM counter repository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Increment adds delta to the named counter, creating it at delta if absent,
// and returns the resulting value
func (r *GormCounterRepository) Increment(ctx context.Context, name string, delta int64) (int64, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("value + ?", delta),
			}),
		}).
		Create(&GlobalCounterModel{Name: name, Value: delta}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return r.Get(ctx, name)
}

// Get returns the named counter's value, zero if absent
func (r *GormCounterRepository) Get(ctx context.Context, name string) (int64, error) {
	var model GlobalCounterModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read counter %s: %w", name, err)
	}
	return model.Value, nil
}

var _ colony.CounterRepository = (*GormCounterRepository)(nil)
