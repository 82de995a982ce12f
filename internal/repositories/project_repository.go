package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tidynotes.com/tidynotes/internal/constants"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

// ProjectRepository is the project CRUD facade over a storage backend. It
// owns the single-default invariant: whenever at least one project exists,
// exactly one carries the default flag.
type ProjectRepository struct {
	store storage.Backend

	// Serializes default-flag maintenance so concurrent calls cannot seed
	// or promote two defaults.
	mu sync.Mutex
}

func NewProjectRepository(store storage.Backend) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// FetchAll returns projects default-first then by name. A non-empty
// collection with no default gets its first project promoted on the way out.
func (r *ProjectRepository) FetchAll(ctx context.Context) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.store.Projects(ctx)
	if err != nil {
		return nil, apperrors.ErrProjectFetchFailed
	}

	if len(projects) > 0 && !hasDefault(projects) {
		projects[0].IsDefault = true
		if err := r.store.UpsertProject(ctx, &projects[0]); err != nil {
			return nil, apperrors.ErrProjectUpdateFailed
		}
		projects, err = r.store.Projects(ctx)
		if err != nil {
			return nil, apperrors.ErrProjectFetchFailed
		}
	}
	return projects, nil
}

func (r *ProjectRepository) FetchByID(ctx context.Context, id string) (*model.Project, error) {
	project, err := r.store.ProjectByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrProjectFetchFailed
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (r *ProjectRepository) Add(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.Name == "" {
		return nil, apperrors.ErrInvalidProject
	}
	if project.Color == "" {
		project.Color = constants.DefaultProjectColor
	}
	if !constants.ValidProjectColor(project.Color) {
		return nil, apperrors.ErrInvalidProject
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if project.IsDefault {
		if err := r.clearOtherDefaults(ctx, project.ID); err != nil {
			return nil, err
		}
	}

	if err := r.store.UpsertProject(ctx, project); err != nil {
		return nil, apperrors.ErrProjectCreateFailed
	}
	return project, nil
}

// Update persists the project, keeping the single-default invariant. An
// update that would leave zero defaults is corrected: the project keeps its
// default flag when no other project can take it over. Omitted color and
// icon fields inherit the stored values.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.Name == "" {
		return nil, apperrors.ErrInvalidProject
	}
	if project.Color != "" && !constants.ValidProjectColor(project.Color) {
		return nil, apperrors.ErrInvalidProject
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.ProjectByID(ctx, project.ID)
	if err != nil {
		return nil, apperrors.ErrProjectUpdateFailed
	}
	if existing == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	if project.Color == "" {
		project.Color = existing.Color
	}
	if project.Icon == nil {
		project.Icon = existing.Icon
	}

	if project.IsDefault {
		if err := r.clearOtherDefaults(ctx, project.ID); err != nil {
			return nil, err
		}
	} else if existing.IsDefault {
		promoted, err := r.promoteAnother(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		if !promoted {
			project.IsDefault = true
		}
	}

	if err := r.store.UpsertProject(ctx, project); err != nil {
		return nil, apperrors.ErrProjectUpdateFailed
	}
	return project, nil
}

// Delete removes a non-default project. Tasks still referencing it are
// reassigned to the default project afterwards.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.ProjectByID(ctx, id)
	if err != nil {
		return apperrors.ErrProjectDeleteFailed
	}
	if existing == nil {
		return apperrors.ErrProjectNotFound
	}
	if existing.IsDefault {
		return apperrors.ErrCannotDeleteDefault
	}

	if err := r.store.DeleteProject(ctx, id); err != nil {
		return apperrors.ErrProjectDeleteFailed
	}

	return r.reassignOrphanedTasks(ctx, id)
}

// GetDefault returns the default project, promoting the first project when
// none is flagged, or seeding a fresh one when the collection is empty.
func (r *ProjectRepository) GetDefault(ctx context.Context) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getDefaultLocked(ctx)
}

func (r *ProjectRepository) getDefaultLocked(ctx context.Context) (*model.Project, error) {
	projects, err := r.store.Projects(ctx)
	if err != nil {
		return nil, apperrors.ErrProjectFetchFailed
	}

	for i := range projects {
		if projects[i].IsDefault {
			return &projects[i], nil
		}
	}

	if len(projects) > 0 {
		projects[0].IsDefault = true
		if err := r.store.UpsertProject(ctx, &projects[0]); err != nil {
			return nil, apperrors.ErrProjectUpdateFailed
		}
		return &projects[0], nil
	}

	icon := constants.DefaultProjectIcon
	seed := &model.Project{
		ID:        uuid.NewString(),
		Name:      constants.DefaultProjectName,
		Color:     constants.DefaultProjectColor,
		Icon:      &icon,
		IsDefault: true,
	}
	if err := r.store.UpsertProject(ctx, seed); err != nil {
		return nil, apperrors.ErrProjectCreateFailed
	}
	return seed, nil
}

func (r *ProjectRepository) clearOtherDefaults(ctx context.Context, exceptID string) error {
	projects, err := r.store.Projects(ctx)
	if err != nil {
		return apperrors.ErrProjectFetchFailed
	}

	for i := range projects {
		if projects[i].ID == exceptID || !projects[i].IsDefault {
			continue
		}
		projects[i].IsDefault = false
		if err := r.store.UpsertProject(ctx, &projects[i]); err != nil {
			return apperrors.ErrProjectUpdateFailed
		}
	}
	return nil
}

func (r *ProjectRepository) promoteAnother(ctx context.Context, exceptID string) (bool, error) {
	projects, err := r.store.Projects(ctx)
	if err != nil {
		return false, apperrors.ErrProjectFetchFailed
	}

	for i := range projects {
		if projects[i].ID == exceptID {
			continue
		}
		projects[i].IsDefault = true
		if err := r.store.UpsertProject(ctx, &projects[i]); err != nil {
			return false, apperrors.ErrProjectUpdateFailed
		}
		return true, nil
	}
	return false, nil
}

func (r *ProjectRepository) reassignOrphanedTasks(ctx context.Context, projectID string) error {
	tasks, err := r.store.Tasks(ctx, storage.TaskFilter{ProjectID: projectID})
	if err != nil {
		return apperrors.ErrTaskFetchFailed
	}
	if len(tasks) == 0 {
		return nil
	}

	fallback, err := r.getDefaultLocked(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].ProjectID = &fallback.ID
		if err := r.store.UpsertTask(ctx, &tasks[i]); err != nil {
			return apperrors.ErrTaskUpdateFailed
		}
	}
	return nil
}

func hasDefault(projects []model.Project) bool {
	for _, p := range projects {
		if p.IsDefault {
			return true
		}
	}
	return false
}
