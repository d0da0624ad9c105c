package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// GormAgentRecordRepository implements agent.RecordRepository using GORM
type GormAgentRecordRepository struct {
	db *gorm.DB
}

// NewGormAgentRecordRepository creates a new GORM agent record repository
func NewGormAgentRecordRepository(db *gorm.DB) *GormAgentRecordRepository {
	return &GormAgentRecordRepository{db: db}
}

// Save upserts an agent record by id
func (r *GormAgentRecordRepository) Save(ctx context.Context, rec *agent.Record) error {
	model := agentRecordToModel(rec)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save agent record: %w", err)
	}
	return nil
}

// FindByID retrieves an agent record by id
func (r *GormAgentRecordRepository) FindByID(ctx context.Context, id string) (*agent.Record, error) {
	var model AgentRecordModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agent record: %w", err)
	}
	return agentRecordFromModel(&model)
}

// ListByWorld retrieves all agent records for a world
func (r *GormAgentRecordRepository) ListByWorld(ctx context.Context, worldID string) ([]*agent.Record, error) {
	var models []AgentRecordModel
	if err := r.db.WithContext(ctx).Where("world_id = ?", worldID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list agent records: %w", err)
	}
	return agentRecordsFromModels(models)
}

// ListAll retrieves every agent record
func (r *GormAgentRecordRepository) ListAll(ctx context.Context) ([]*agent.Record, error) {
	var models []AgentRecordModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list agent records: %w", err)
	}
	return agentRecordsFromModels(models)
}

// Delete removes an agent record by id
func (r *GormAgentRecordRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AgentRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete agent record: %w", err)
	}
	return nil
}

// DeleteMissing removes records whose id is not in the live set. An empty
// live set deletes everything: no live agents means no records to keep.
func (r *GormAgentRecordRepository) DeleteMissing(ctx context.Context, liveIDs []string) (int64, error) {
	query := r.db.WithContext(ctx)
	if len(liveIDs) > 0 {
		query = query.Where("id NOT IN ?", liveIDs)
	} else {
		query = query.Where("1 = 1")
	}
	result := query.Delete(&AgentRecordModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reconcile agent records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ClearStalePaths drops cached paths written before the cutoff tick
func (r *GormAgentRecordRepository) ClearStalePaths(ctx context.Context, writtenBefore shared.Tick) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&AgentRecordModel{}).
		Where("path_written_at > 0 AND path_written_at < ?", int64(writtenBefore)).
		Updates(map[string]interface{}{
			"cached_path":     nil,
			"path_written_at": 0,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear stale paths: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func agentRecordToModel(rec *agent.Record) *AgentRecordModel {
	return &AgentRecordModel{
		ID:             rec.ID,
		Name:           rec.Name,
		WorldID:        rec.WorldID,
		Role:           string(rec.Role),
		State:          string(rec.State),
		TargetID:       rec.TargetID,
		CachedPath:     rec.CachedPath,
		PathWrittenAt:  int64(rec.PathWrittenAt),
		AssignedNodeID: rec.AssignedNodeID,
		AnchorX:        rec.AnchorX,
		AnchorY:        rec.AnchorY,
		SpawnedAt:      int64(rec.SpawnedAt),
	}
}

func agentRecordFromModel(model *AgentRecordModel) (*agent.Record, error) {
	role, err := agent.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("corrupt agent record %s: %w", model.ID, err)
	}
	return &agent.Record{
		ID:             model.ID,
		Name:           model.Name,
		WorldID:        model.WorldID,
		Role:           role,
		State:          agent.State(model.State),
		TargetID:       model.TargetID,
		CachedPath:     model.CachedPath,
		PathWrittenAt:  shared.Tick(model.PathWrittenAt),
		AssignedNodeID: model.AssignedNodeID,
		AnchorX:        model.AnchorX,
		AnchorY:        model.AnchorY,
		SpawnedAt:      shared.Tick(model.SpawnedAt),
	}, nil
}

func agentRecordsFromModels(models []AgentRecordModel) ([]*agent.Record, error) {
	records := make([]*agent.Record, 0, len(models))
	for i := range models {
		rec, err := agentRecordFromModel(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
