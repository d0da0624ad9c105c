package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// GormWorldRepository implements colony.WorldRepository using GORM
type GormWorldRepository struct {
	db *gorm.DB
}

// NewGormWorldRepository creates a new GORM world record repository
func NewGormWorldRepository(db *gorm.DB) *GormWorldRepository {
	return &GormWorldRepository{db: db}
}

// Save upserts a world record by id
func (r *GormWorldRepository) Save(ctx context.Context, rec *colony.WorldRecord) error {
	model, err := worldRecordToModel(rec)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save world record: %w", err)
	}
	return nil
}

// FindByID retrieves a world record by id
func (r *GormWorldRepository) FindByID(ctx context.Context, id string) (*colony.WorldRecord, error) {
	var model WorldRecordModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find world record: %w", err)
	}
	return worldRecordFromModel(&model)
}

// ListAll retrieves every world record
func (r *GormWorldRepository) ListAll(ctx context.Context) ([]*colony.WorldRecord, error) {
	var models []WorldRecordModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list world records: %w", err)
	}
	records := make([]*colony.WorldRecord, 0, len(models))
	for i := range models {
		rec, err := worldRecordFromModel(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes a world record by id
func (r *GormWorldRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&WorldRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete world record: %w", err)
	}
	return nil
}

// DeleteUnseen prunes worlds not observed since the cutoff tick
func (r *GormWorldRepository) DeleteUnseen(ctx context.Context, seenBefore shared.Tick) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("seen_at < ?", int64(seenBefore)).
		Delete(&WorldRecordModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune world records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func worldRecordToModel(rec *colony.WorldRecord) (*WorldRecordModel, error) {
	nodeIDs, err := json.Marshal(rec.ExtractionNodeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize node ids: %w", err)
	}
	relays, err := json.Marshal(rec.Relays)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize relay topology: %w", err)
	}
	synthesis, err := json.Marshal(rec.Synthesis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize synthesis config: %w", err)
	}
	stats, err := json.Marshal(rec.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize statistics: %w", err)
	}
	return &WorldRecordModel{
		ID:                rec.ID,
		Tier:              rec.Tier,
		ExtractionNodeIDs: string(nodeIDs),
		Relays:            string(relays),
		Synthesis:         string(synthesis),
		Stats:             string(stats),
		RoadPlanLastRun:   int64(rec.RoadPlanLastRun),
		SeenAt:            int64(rec.SeenAt),
	}, nil
}

func worldRecordFromModel(model *WorldRecordModel) (*colony.WorldRecord, error) {
	rec := &colony.WorldRecord{
		ID:              model.ID,
		Tier:            model.Tier,
		RoadPlanLastRun: shared.Tick(model.RoadPlanLastRun),
		SeenAt:          shared.Tick(model.SeenAt),
	}
	if model.ExtractionNodeIDs != "" {
		if err := json.Unmarshal([]byte(model.ExtractionNodeIDs), &rec.ExtractionNodeIDs); err != nil {
			return nil, fmt.Errorf("corrupt world record %s node ids: %w", model.ID, err)
		}
	}
	if model.Relays != "" {
		if err := json.Unmarshal([]byte(model.Relays), &rec.Relays); err != nil {
			return nil, fmt.Errorf("corrupt world record %s relay topology: %w", model.ID, err)
		}
	}
	if model.Synthesis != "" {
		if err := json.Unmarshal([]byte(model.Synthesis), &rec.Synthesis); err != nil {
			return nil, fmt.Errorf("corrupt world record %s synthesis config: %w", model.ID, err)
		}
	}
	if model.Stats != "" {
		if err := json.Unmarshal([]byte(model.Stats), &rec.Stats); err != nil {
			return nil, fmt.Errorf("corrupt world record %s statistics: %w", model.ID, err)
		}
	}
	return rec, nil
}
