package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tidynotes.com/tidynotes/internal/constants"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

// TaskRepository is the task CRUD facade over a storage backend. Backend
// errors never leak; every failure maps to the task error taxonomy.
type TaskRepository struct {
	store    storage.Backend
	notifier ReminderNotifier
	images   ImageStore
}

func NewTaskRepository(store storage.Backend) *TaskRepository {
	return &TaskRepository{store: store}
}

// SetReminderNotifier wires the external notification scheduler. Optional;
// when unset, reminder toggles only persist the fields.
func (r *TaskRepository) SetReminderNotifier(n ReminderNotifier) {
	r.notifier = n
}

// SetImageStore wires the external attachment store. Optional.
func (r *TaskRepository) SetImageStore(s ImageStore) {
	r.images = s
}

func (r *TaskRepository) FetchAll(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := r.store.Tasks(ctx, storage.TaskFilter{UserID: userID})
	if err != nil {
		return nil, apperrors.ErrTaskFetchFailed
	}
	return tasks, nil
}

func (r *TaskRepository) FetchByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := r.store.TaskByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrTaskFetchFailed
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) Add(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.Title == "" {
		return nil, apperrors.ErrInvalidTask
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.Status == "" {
		task.Status = constants.StatusTodo
	}
	if !task.Status.Valid() {
		return nil, apperrors.ErrInvalidTask
	}
	if err := r.checkProjectRef(ctx, task.ProjectID); err != nil {
		return nil, err
	}

	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskCreateFailed
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.Title == "" {
		return nil, apperrors.ErrInvalidTask
	}
	if task.Status != "" && !task.Status.Valid() {
		return nil, apperrors.ErrInvalidTask
	}

	existing, err := r.store.TaskByID(ctx, task.ID)
	if err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}
	if existing == nil {
		return nil, apperrors.ErrTaskNotFound
	}
	if task.Status == "" {
		task.Status = existing.Status
	}
	// The image path is owned by the attach operation, not the update payload.
	if task.ImagePath == nil {
		task.ImagePath = existing.ImagePath
	}
	if err := r.checkProjectRef(ctx, task.ProjectID); err != nil {
		return nil, err
	}

	// Creation time is stable across the record's lifetime.
	task.CreatedAt = existing.CreatedAt

	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}

	r.notifyReminder(task)
	return task, nil
}

// Delete removes the task by id. Deletion is physical; an absent id is a
// no-op success.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteTask(ctx, id); err != nil {
		return apperrors.ErrTaskDeleteFailed
	}
	if r.notifier != nil {
		r.notifier.CancelReminder(id)
	}
	return nil
}

func (r *TaskRepository) AssignToProject(ctx context.Context, taskID, projectID string) (*model.Task, error) {
	task, err := r.FetchByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := r.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, apperrors.ErrProjectFetchFailed
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	task.ProjectID = &project.ID
	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}
	return task, nil
}

func (r *TaskRepository) SetPriority(ctx context.Context, taskID string, priority bool) (*model.Task, error) {
	task, err := r.FetchByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.IsPriority = priority
	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}
	return task, nil
}

// SetReminder toggles the reminder fields and informs the scheduler.
func (r *TaskRepository) SetReminder(ctx context.Context, taskID string, on bool, at *time.Time) (*model.Task, error) {
	task, err := r.FetchByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.IsReminderOn = on
	task.ReminderDate = at
	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}

	r.notifyReminder(task)
	return task, nil
}

// AttachImage stores raw image bytes through the attachment collaborator and
// records the returned path on the task.
func (r *TaskRepository) AttachImage(ctx context.Context, taskID string, data []byte) (*model.Task, error) {
	if r.images == nil || len(data) == 0 {
		return nil, apperrors.ErrInvalidTask
	}

	task, err := r.FetchByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	path, err := r.images.SaveImage(taskID, data)
	if err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}

	task.ImagePath = &path
	if err := r.store.UpsertTask(ctx, task); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed
	}
	return task, nil
}

func (r *TaskRepository) checkProjectRef(ctx context.Context, projectID *string) error {
	if projectID == nil || *projectID == "" {
		return nil
	}
	project, err := r.store.ProjectByID(ctx, *projectID)
	if err != nil {
		return apperrors.ErrProjectFetchFailed
	}
	if project == nil {
		return apperrors.ErrInvalidTask
	}
	return nil
}

func (r *TaskRepository) notifyReminder(task *model.Task) {
	if r.notifier == nil {
		return
	}
	if task.IsReminderOn && task.ReminderDate != nil {
		r.notifier.ScheduleReminder(task.ID, task.Title, *task.ReminderDate)
	} else {
		r.notifier.CancelReminder(task.ID)
	}
}
