package storage

import (
	"context"
	"sort"
	"sync"

	model "tidynotes.com/tidynotes/internal/models"
)

// Memory is the ephemeral backend used for previews, tests and as the
// migration source. Same contract as Local, backed by maps.
type Memory struct {
	mu       sync.RWMutex
	tasks    map[string]model.Task
	projects map[string]model.Project
	profiles map[string]model.UserProfile
}

func NewMemory() *Memory {
	return &Memory{
		tasks:    make(map[string]model.Task),
		projects: make(map[string]model.Project),
		profiles: make(map[string]model.UserProfile),
	}
}

func (m *Memory) UpsertTask(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) TaskByID(_ context.Context, id string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (m *Memory) Tasks(_ context.Context, filter TaskFilter) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]model.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if filter.ProjectID != "" && (task.ProjectID == nil || *task.ProjectID != filter.ProjectID) {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (m *Memory) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tasks, id)
	return nil
}

func (m *Memory) DeleteAllTasks(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = make(map[string]model.Task)
	return nil
}

func (m *Memory) ReplaceUserTasks(_ context.Context, userID string, tasks []model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, task := range m.tasks {
		if task.UserID == userID {
			delete(m.tasks, id)
		}
	}
	for _, task := range tasks {
		m.tasks[task.ID] = task
	}
	return nil
}

func (m *Memory) UpsertProject(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects[project.ID] = *project
	return nil
}

func (m *Memory) ProjectByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (m *Memory) Projects(_ context.Context) ([]model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := make([]model.Project, 0, len(m.projects))
	for _, project := range m.projects {
		projects = append(projects, project)
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].IsDefault != projects[j].IsDefault {
			return projects[i].IsDefault
		}
		if projects[i].Name != projects[j].Name {
			return projects[i].Name < projects[j].Name
		}
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

func (m *Memory) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.projects, id)
	return nil
}

func (m *Memory) DeleteAllProjects(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects = make(map[string]model.Project)
	return nil
}

func (m *Memory) UpsertProfile(_ context.Context, profile *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[profile.UserID] = *profile
	return nil
}

func (m *Memory) ProfileByID(_ context.Context, userID string) (*model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *Memory) DeleteProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.profiles, userID)
	return nil
}

func (m *Memory) DeleteAllProfiles(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles = make(map[string]model.UserProfile)
	return nil
}
