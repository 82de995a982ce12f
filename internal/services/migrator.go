package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tidynotes.com/tidynotes/internal/constants"
	model "tidynotes.com/tidynotes/internal/models"
	repository "tidynotes.com/tidynotes/internal/repositories"
	"tidynotes.com/tidynotes/internal/storage"
)

type MigrationState string

const (
	MigrationIdle            MigrationState = "idle"
	MigrationChecking        MigrationState = "checking_target_empty"
	MigrationCopyingProjects MigrationState = "copying_projects"
	MigrationCopyingTasks    MigrationState = "copying_tasks"
	MigrationDone            MigrationState = "done"
	MigrationFailed          MigrationState = "failed"
)

var ErrMigrationInFlight = errors.New("a migration is already in flight")

// Migrator moves entity collections between backends. At most one run is in
// flight at a time. Copies are best-effort: a mid-batch failure surfaces as
// one error for the whole batch and already-copied records stay put, so a
// failed run must be treated as possibly partial.
type Migrator struct {
	mu      sync.Mutex
	running bool
	state   MigrationState
	log     *zap.Logger
}

func NewMigrator(log *zap.Logger) *Migrator {
	return &Migrator{
		state: MigrationIdle,
		log:   log,
	}
}

func (m *Migrator) State() MigrationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Migrator) setState(s MigrationState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Migrator) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return ErrMigrationInFlight
	}
	m.running = true
	return nil
}

func (m *Migrator) end() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Run copies all projects, then all tasks, from source into target through
// the target repositories' add operation. Projects go first so task project
// references always resolve in the target.
func (m *Migrator) Run(ctx context.Context, source, target storage.Backend) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	return m.runLocked(ctx, source, target)
}

func (m *Migrator) runLocked(ctx context.Context, source, target storage.Backend) error {
	err := m.copyAll(ctx, source, target)
	if err != nil {
		m.setState(MigrationFailed)
		m.log.Error("migration failed", zap.Error(err))
		return err
	}

	m.setState(MigrationDone)
	return nil
}

func (m *Migrator) copyAll(ctx context.Context, source, target storage.Backend) error {
	targetProjects := repository.NewProjectRepository(target)
	targetTasks := repository.NewTaskRepository(target)

	m.setState(MigrationCopyingProjects)
	projects, err := source.Projects(ctx)
	if err != nil {
		return err
	}
	for i := range projects {
		if _, err := targetProjects.Add(ctx, &projects[i]); err != nil {
			return err
		}
	}

	m.setState(MigrationCopyingTasks)
	tasks, err := source.Tasks(ctx, storage.TaskFilter{})
	if err != nil {
		return err
	}
	for i := range tasks {
		if _, err := targetTasks.Add(ctx, &tasks[i]); err != nil {
			return err
		}
	}

	m.log.Info("migration complete",
		zap.Int("projects", len(projects)),
		zap.Int("tasks", len(tasks)),
	)
	return nil
}

// EnsureInitialData makes first-run setup idempotent. A non-empty target is
// left alone. An empty target is filled from the source when the source
// holds data, otherwise seeded with the fixed default dataset. The
// empty-check and the seed run under the same in-flight guard as Run, so
// parallel setup calls cannot both observe an empty target and double-seed.
func (m *Migrator) EnsureInitialData(ctx context.Context, source, target storage.Backend) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	m.setState(MigrationChecking)

	empty, err := backendEmpty(ctx, target)
	if err != nil {
		m.setState(MigrationFailed)
		return err
	}
	if !empty {
		m.setState(MigrationDone)
		return nil
	}

	sourceEmpty, err := backendEmpty(ctx, source)
	if err != nil {
		m.setState(MigrationFailed)
		return err
	}
	if !sourceEmpty {
		return m.runLocked(ctx, source, target)
	}

	if err := m.seedDefaults(ctx, target); err != nil {
		m.setState(MigrationFailed)
		return err
	}
	m.setState(MigrationDone)
	return nil
}

func (m *Migrator) seedDefaults(ctx context.Context, target storage.Backend) error {
	projects := repository.NewProjectRepository(target)
	tasks := repository.NewTaskRepository(target)

	personIcon := constants.DefaultProjectIcon
	briefcaseIcon := "briefcase"
	cartIcon := "cart"

	seedProjects := []model.Project{
		{Name: constants.DefaultProjectName, Color: constants.DefaultProjectColor, Icon: &personIcon, IsDefault: true},
		{Name: "Work", Color: constants.ColorRed, Icon: &briefcaseIcon},
		{Name: "Shopping", Color: constants.ColorGreen, Icon: &cartIcon},
	}

	var defaultID string
	for i := range seedProjects {
		added, err := projects.Add(ctx, &seedProjects[i])
		if err != nil {
			return err
		}
		if added.IsDefault {
			defaultID = added.ID
		}
	}

	due := time.Now().UTC().Add(24 * time.Hour)
	sample := model.Task{
		Title:       "Welcome to TidyNotes",
		Description: "This is your first task",
		IsPriority:  true,
		DueDate:     &due,
		Status:      constants.StatusTodo,
		ProjectID:   &defaultID,
	}
	if _, err := tasks.Add(ctx, &sample); err != nil {
		return err
	}

	m.log.Info("seeded default dataset")
	return nil
}

func backendEmpty(ctx context.Context, b storage.Backend) (bool, error) {
	projects, err := b.Projects(ctx)
	if err != nil {
		return false, err
	}
	if len(projects) > 0 {
		return false, nil
	}

	tasks, err := b.Tasks(ctx, storage.TaskFilter{})
	if err != nil {
		return false, err
	}
	return len(tasks) == 0, nil
}
