package repository

import (
	"context"
	"sync"

	"tidynotes.com/tidynotes/internal/storage"
)

type BackendKind string

const (
	BackendMemory BackendKind = "memory"
	BackendLocal  BackendKind = "local"
)

// MigrateFunc copies all records from source into target. Injected by the
// composition root so the factory stays decoupled from the sync engine.
type MigrateFunc func(ctx context.Context, source, target storage.Backend) error

// Factory is the process-wide, runtime-swappable binding from repository
// role to backend. Repositories are built once per backend so invariant
// locks are shared by every caller.
type Factory struct {
	mu      sync.RWMutex
	kind    BackendKind
	memory  storage.Backend
	local   storage.Backend
	migrate MigrateFunc

	memTasks    *TaskRepository
	memProjects *ProjectRepository
	memProfiles *ProfileRepository

	localTasks    *TaskRepository
	localProjects *ProjectRepository
	localProfiles *ProfileRepository
}

func NewFactory(memory, local storage.Backend, kind BackendKind, migrate MigrateFunc) *Factory {
	return &Factory{
		kind:          kind,
		memory:        memory,
		local:         local,
		migrate:       migrate,
		memTasks:      NewTaskRepository(memory),
		memProjects:   NewProjectRepository(memory),
		memProfiles:   NewProfileRepository(memory),
		localTasks:    NewTaskRepository(local),
		localProjects: NewProjectRepository(local),
		localProfiles: NewProfileRepository(local),
	}
}

func (f *Factory) Kind() BackendKind {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.kind
}

func (f *Factory) Tasks() *TaskRepository {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.kind == BackendMemory {
		return f.memTasks
	}
	return f.localTasks
}

func (f *Factory) Projects() *ProjectRepository {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.kind == BackendMemory {
		return f.memProjects
	}
	return f.localProjects
}

func (f *Factory) Profiles() *ProfileRepository {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.kind == BackendMemory {
		return f.memProfiles
	}
	return f.localProfiles
}

// SetReminderNotifier wires the scheduler into the task repositories of
// both backends.
func (f *Factory) SetReminderNotifier(n ReminderNotifier) {
	f.memTasks.SetReminderNotifier(n)
	f.localTasks.SetReminderNotifier(n)
}

// SetImageStore wires the attachment store into both task repositories.
func (f *Factory) SetImageStore(s ImageStore) {
	f.memTasks.SetImageStore(s)
	f.localTasks.SetImageStore(s)
}

// SetBackend rebinds the active backend. Switching memory to local runs the
// migration first; the switch is complete only after it succeeds. The other
// direction is a pure rebind.
func (f *Factory) SetBackend(ctx context.Context, kind BackendKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if kind == f.kind {
		return nil
	}

	if kind == BackendLocal && f.migrate != nil {
		if err := f.migrate(ctx, f.memory, f.local); err != nil {
			return err
		}
	}

	f.kind = kind
	return nil
}
