package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"tidynotes.com/tidynotes/internal/constants"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

type stubNotifier struct {
	scheduled []string
	cancelled []string
}

func (s *stubNotifier) ScheduleReminder(taskID, title string, at time.Time) {
	s.scheduled = append(s.scheduled, taskID)
}

func (s *stubNotifier) CancelReminder(taskID string) {
	s.cancelled = append(s.cancelled, taskID)
}

type stubImageStore struct {
	saved map[string][]byte
	err   error
}

func (s *stubImageStore) SaveImage(taskID string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[taskID] = data
	return "images/" + taskID + ".img", nil
}

func TestAddTaskDefaults(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())

	created, err := repo.Add(context.Background(), &model.Task{UserID: "u1", Title: "Buy milk"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Status != constants.StatusTodo {
		t.Errorf("expected default status todo, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected creation time to be stamped")
	}
}

func TestAddTaskValidation(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	if _, err := repo.Add(ctx, &model.Task{UserID: "u1"}); !errors.Is(err, apperrors.ErrInvalidTask) {
		t.Errorf("empty title: expected invalid task, got %v", err)
	}

	bad := &model.Task{UserID: "u1", Title: "X", Status: "shelved"}
	if _, err := repo.Add(ctx, bad); !errors.Is(err, apperrors.ErrInvalidTask) {
		t.Errorf("unknown status: expected invalid task, got %v", err)
	}

	missing := "no-such-project"
	dangling := &model.Task{UserID: "u1", Title: "X", ProjectID: &missing}
	if _, err := repo.Add(ctx, dangling); !errors.Is(err, apperrors.ErrInvalidTask) {
		t.Errorf("dangling project ref: expected invalid task, got %v", err)
	}
}

func TestUpdateTaskPreservesCreationTime(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Original"})
	original := created.CreatedAt

	updated, err := repo.Update(ctx, &model.Task{
		ID:        created.ID,
		UserID:    "u1",
		Title:     "Renamed",
		CreatedAt: time.Now().Add(48 * time.Hour),
		Status:    constants.StatusDone,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.CreatedAt.Equal(original) {
		t.Errorf("creation time changed: %v != %v", updated.CreatedAt, original)
	}
	if updated.Status != constants.StatusDone {
		t.Errorf("expected status done, got %q", updated.Status)
	}
}

func TestUpdateTaskInheritsStatus(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "T", Status: constants.StatusInProgress})

	updated, err := repo.Update(ctx, &model.Task{ID: created.ID, UserID: "u1", Title: "T2"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != constants.StatusInProgress {
		t.Errorf("expected status carried over, got %q", updated.Status)
	}
}

func TestUpdateTaskKeepsImagePath(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	repo.SetImageStore(&stubImageStore{})
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Photo"})
	attached, _ := repo.AttachImage(ctx, created.ID, []byte{1, 2})

	updated, err := repo.Update(ctx, &model.Task{ID: created.ID, UserID: "u1", Title: "Renamed"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ImagePath == nil || *updated.ImagePath != *attached.ImagePath {
		t.Errorf("expected image path carried over, got %v", updated.ImagePath)
	}
}

func TestUpdateAbsentTask(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())

	_, err := repo.Update(context.Background(), &model.Task{ID: "missing", Title: "X"})
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestDeleteTaskIdempotent(t *testing.T) {
	notifier := &stubNotifier{}
	repo := NewTaskRepository(storage.NewMemory())
	repo.SetReminderNotifier(notifier)
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Gone"})

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Errorf("repeat delete should succeed, got %v", err)
	}
	if len(notifier.cancelled) != 2 {
		t.Errorf("expected reminder cancel on every delete, got %d", len(notifier.cancelled))
	}
}

func TestAssignToProject(t *testing.T) {
	backend := storage.NewMemory()
	repo := NewTaskRepository(backend)
	ctx := context.Background()

	project := model.Project{ID: "p1", Name: "Home", Color: constants.ColorBlue}
	_ = backend.UpsertProject(ctx, &project)
	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Chore"})

	assigned, err := repo.AssignToProject(ctx, created.ID, "p1")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if assigned.ProjectID == nil || *assigned.ProjectID != "p1" {
		t.Errorf("expected project p1, got %v", assigned.ProjectID)
	}

	if _, err := repo.AssignToProject(ctx, created.ID, "nope"); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("absent project: expected not-found, got %v", err)
	}
}

func TestSetPriority(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Urgent"})

	flagged, err := repo.SetPriority(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("set priority failed: %v", err)
	}
	if !flagged.IsPriority {
		t.Error("expected priority flag set")
	}
}

func TestSetReminderNotifiesScheduler(t *testing.T) {
	notifier := &stubNotifier{}
	repo := NewTaskRepository(storage.NewMemory())
	repo.SetReminderNotifier(notifier)
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Call"})

	at := time.Now().Add(time.Hour)
	updated, err := repo.SetReminder(ctx, created.ID, true, &at)
	if err != nil {
		t.Fatalf("set reminder failed: %v", err)
	}
	if !updated.IsReminderOn || updated.ReminderDate == nil {
		t.Errorf("reminder fields not persisted: %+v", updated)
	}
	if len(notifier.scheduled) != 1 || notifier.scheduled[0] != created.ID {
		t.Errorf("expected one schedule call, got %v", notifier.scheduled)
	}

	if _, err := repo.SetReminder(ctx, created.ID, false, nil); err != nil {
		t.Fatalf("clear reminder failed: %v", err)
	}
	if len(notifier.cancelled) != 1 {
		t.Errorf("expected one cancel call, got %v", notifier.cancelled)
	}
}

func TestSetReminderWithoutNotifier(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Quiet"})
	at := time.Now().Add(time.Hour)

	if _, err := repo.SetReminder(ctx, created.ID, true, &at); err != nil {
		t.Fatalf("set reminder without notifier must still persist: %v", err)
	}
}

func TestAttachImage(t *testing.T) {
	images := &stubImageStore{}
	repo := NewTaskRepository(storage.NewMemory())
	repo.SetImageStore(images)
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Photo"})

	updated, err := repo.AttachImage(ctx, created.ID, []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if updated.ImagePath == nil || *updated.ImagePath != "images/"+created.ID+".img" {
		t.Errorf("unexpected image path: %v", updated.ImagePath)
	}
	if _, ok := images.saved[created.ID]; !ok {
		t.Error("image bytes never reached the store")
	}
}

func TestAttachImageRequiresStoreAndData(t *testing.T) {
	repo := NewTaskRepository(storage.NewMemory())
	ctx := context.Background()

	created, _ := repo.Add(ctx, &model.Task{UserID: "u1", Title: "Photo"})

	if _, err := repo.AttachImage(ctx, created.ID, []byte{1}); !errors.Is(err, apperrors.ErrInvalidTask) {
		t.Errorf("no image store wired: expected invalid task, got %v", err)
	}

	repo.SetImageStore(&stubImageStore{})
	if _, err := repo.AttachImage(ctx, created.ID, nil); !errors.Is(err, apperrors.ErrInvalidTask) {
		t.Errorf("empty payload: expected invalid task, got %v", err)
	}
}
