package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jarvis/internal/models"
)

// ContextRepository is the durable copy of context records. Writes run in a
// transaction scoped to the call and are rolled back on any error.
type ContextRepository interface {
	Get(ctx context.Context, key string) (models.Fields, bool, error)
	Record(ctx context.Context, key string) (*models.ContextRecord, error)
	Set(ctx context.Context, key string, data models.Payload) error
	Delete(ctx context.Context, key string) error
}

type contextRepository struct {
	db *gorm.DB
}

func NewContextRepository(db *gorm.DB) ContextRepository {
	return &contextRepository{db: db}
}

func (r *contextRepository) Get(ctx context.Context, key string) (models.Fields, bool, error) {
	rec, err := r.Record(ctx, key)
	if err != nil || rec == nil {
		return nil, false, err
	}
	return rec.Fields(), true, nil
}

// Record returns the full row for key, or nil when it does not exist.
func (r *contextRepository) Record(ctx context.Context, key string) (*models.ContextRecord, error) {
	var rec models.ContextRecord
	if err := r.db.WithContext(ctx).Take(&rec, "context_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Set replaces all three fields of key, creating the row on first write.
// created_at is only assigned by the insert branch of the upsert.
func (r *contextRepository) Set(ctx context.Context, key string, data models.Payload) error {
	if err := models.ValidateKey(key); err != nil {
		return err
	}
	fields, err := models.Project(data)
	if err != nil {
		return err
	}
	rec := models.NewContextRecord(key, fields)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "context_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_name", "repo_name", "jira_number", "updated_at",
			}),
		}).Create(rec).Error
		if err != nil {
			return fmt.Errorf("upsert context: %w", err)
		}
		return nil
	})
}

func (r *contextRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("context_key = ?", key).Delete(&models.ContextRecord{}).Error; err != nil {
			return fmt.Errorf("delete context: %w", err)
		}
		return nil
	})
}
