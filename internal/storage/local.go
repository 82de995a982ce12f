package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "tidynotes.com/tidynotes/internal/models"
)

// SchemaVersion is the store-wide schema version. Bump it together with a
// new step in runSchemaMigrations.
const SchemaVersion = 2

type schemaInfo struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

func (schemaInfo) TableName() string { return "schema_info" }

// Local is the persistent on-device backend. All mutations run inside a
// write transaction; reads run without one.
type Local struct {
	db *gorm.DB
}

// NewLocal prepares the schema and runs any pending in-place migration.
// A migration failure leaves the store unusable; callers must treat the
// error as fatal.
func NewLocal(db *gorm.DB) (*Local, error) {
	if err := db.AutoMigrate(&model.Task{}, &model.Project{}, &model.UserProfile{}, &schemaInfo{}); err != nil {
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}

	if err := ensureSchemaVersion(db); err != nil {
		return nil, err
	}

	return &Local{db: db}, nil
}

func ensureSchemaVersion(db *gorm.DB) error {
	var info schemaInfo
	err := db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&schemaInfo{Version: SchemaVersion}).Error
	}
	if err != nil {
		return fmt.Errorf("schema version read failed: %w", err)
	}

	if info.Version > SchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", info.Version, SchemaVersion)
	}
	if info.Version == SchemaVersion {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := runSchemaMigrations(tx, info.Version); err != nil {
			return fmt.Errorf("schema migration from version %d failed: %w", info.Version, err)
		}
		return tx.Model(&schemaInfo{}).Where("id = ?", info.ID).Update("version", SchemaVersion).Error
	})
}

func runSchemaMigrations(tx *gorm.DB, from int) error {
	if from < 2 {
		// v2 introduced the reminder fields; older rows carry NULLs.
		if err := tx.Model(&model.Task{}).
			Where("is_reminder_on IS NULL").
			Update("is_reminder_on", false).Error; err != nil {
			return err
		}
	}
	return nil
}

// Tasks

func (l *Local) UpsertTask(ctx context.Context, task *model.Task) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(task).Error
	})
}

func (l *Local) TaskByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := l.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (l *Local) Tasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := l.db.WithContext(ctx).Order("created_at desc, id desc")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (l *Local) DeleteTask(ctx context.Context, id string) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.Task{}, "id = ?", id).Error
	})
}

func (l *Local) DeleteAllTasks(ctx context.Context) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&model.Task{}).Error
	})
}

func (l *Local) ReplaceUserTasks(ctx context.Context, userID string, tasks []model.Task) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		for i := range tasks {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Projects

func (l *Local) UpsertProject(ctx context.Context, project *model.Project) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(project).Error
	})
}

func (l *Local) ProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := l.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (l *Local) Projects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := l.db.WithContext(ctx).
		Order("is_default desc, name asc, id asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (l *Local) DeleteProject(ctx context.Context, id string) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
}

func (l *Local) DeleteAllProjects(ctx context.Context) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&model.Project{}).Error
	})
}

// Profiles

func (l *Local) UpsertProfile(ctx context.Context, profile *model.UserProfile) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(profile).Error
	})
}

func (l *Local) ProfileByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := l.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (l *Local) DeleteProfile(ctx context.Context, userID string) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.UserProfile{}, "user_id = ?", userID).Error
	})
}

func (l *Local) DeleteAllProfiles(ctx context.Context) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&model.UserProfile{}).Error
	})
}
