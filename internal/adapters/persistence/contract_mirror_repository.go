package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/contract"
)

// GormContractMirrorRepository mirrors contract data into the shared store
// using GORM. Writes are upserts keyed by contract id, so repeated mirror
// passes converge on the latest snapshot.
type GormContractMirrorRepository struct {
	db *gorm.DB
}

// NewGormContractMirrorRepository creates a new GORM contract mirror repository
func NewGormContractMirrorRepository(db *gorm.DB) *GormContractMirrorRepository {
	return &GormContractMirrorRepository{db: db}
}

// Upsert persists one contract, overwriting any previous mirror of it.
func (r *GormContractMirrorRepository) Upsert(ctx context.Context, c *contract.Contract, snapshotVersion string) error {
	model, err := r.entityToModel(c, snapshotVersion)
	if err != nil {
		return fmt.Errorf("failed to convert contract to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to mirror contract %s: %w", c.ID, result.Error)
	}
	return nil
}

// FindByID retrieves one mirrored contract.
func (r *GormContractMirrorRepository) FindByID(ctx context.Context, contractID string) (*contract.Contract, error) {
	var model ContractMirrorModel
	result := r.db.WithContext(ctx).Where("id = ?", contractID).First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("contract not found: %s", contractID)
		}
		return nil, fmt.Errorf("failed to find contract: %w", result.Error)
	}

	return r.modelToEntity(&model)
}

// FindAll retrieves every mirrored contract.
func (r *GormContractMirrorRepository) FindAll(ctx context.Context) ([]*contract.Contract, error) {
	var models []ContractMirrorModel
	result := r.db.WithContext(ctx).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list mirrored contracts: %w", result.Error)
	}

	contracts := make([]*contract.Contract, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert contract %s: %w", models[i].ID, err)
		}
		contracts = append(contracts, entity)
	}
	return contracts, nil
}

// DeleteStale removes mirrors not written by the given snapshot version.
// Contracts that vanished upstream vanish from the mirror on the next pass.
func (r *GormContractMirrorRepository) DeleteStale(ctx context.Context, snapshotVersion string) error {
	result := r.db.WithContext(ctx).
		Where("snapshot_version <> ?", snapshotVersion).
		Delete(&ContractMirrorModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete stale mirrors: %w", result.Error)
	}
	return nil
}

// modelToEntity converts database model to domain entity
func (r *GormContractMirrorRepository) modelToEntity(model *ContractMirrorModel) (*contract.Contract, error) {
	var conditions []contract.Condition
	if model.ConditionsJSON != "" {
		if err := json.Unmarshal([]byte(model.ConditionsJSON), &conditions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal conditions: %w", err)
		}
	}

	return &contract.Contract{
		ID:         model.ID,
		LocalID:    model.LocalID,
		Type:       model.Type,
		Partner:    model.Partner,
		Conditions: conditions,
	}, nil
}

// entityToModel converts domain entity to database model
func (r *GormContractMirrorRepository) entityToModel(c *contract.Contract, snapshotVersion string) (*ContractMirrorModel, error) {
	conditionsJSON, err := json.Marshal(c.Conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conditions: %w", err)
	}

	return &ContractMirrorModel{
		ID:              c.ID,
		LocalID:         c.LocalID,
		Type:            c.Type,
		Partner:         c.Partner,
		ConditionsJSON:  string(conditionsJSON),
		SnapshotVersion: snapshotVersion,
		MirroredAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}
