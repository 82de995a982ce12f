package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"tidynotes.com/tidynotes/internal/constants"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

// fakeCloudStore is an in-memory stand-in for the remote document store.
type fakeCloudStore struct {
	tasks    map[string]model.Task
	profiles map[string]model.UserProfile
	failWith error
}

func newFakeCloudStore() *fakeCloudStore {
	return &fakeCloudStore{
		tasks:    make(map[string]model.Task),
		profiles: make(map[string]model.UserProfile),
	}
}

func (f *fakeCloudStore) PutTask(ctx context.Context, task model.Task) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeCloudStore) TasksByUser(ctx context.Context, userID string) ([]model.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []model.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeCloudStore) DeleteTask(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeCloudStore) PutProfile(ctx context.Context, profile model.UserProfile) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeCloudStore) ProfileByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (f *fakeCloudStore) DeleteProfile(ctx context.Context, userID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.profiles, userID)
	return nil
}

func cloudTask(id, userID, title string) model.Task {
	return model.Task{
		ID:        id,
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Status:    constants.StatusTodo,
	}
}

func localTaskIDs(t *testing.T, local storage.Backend, userID string) map[string]string {
	t.Helper()
	tasks, err := local.Tasks(context.Background(), storage.TaskFilter{UserID: userID})
	if err != nil {
		t.Fatalf("local fetch failed: %v", err)
	}
	out := make(map[string]string)
	for _, task := range tasks {
		out[task.ID] = task.Title
	}
	return out
}

func TestSyncFromCloudReplacesLocalSet(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	for _, task := range []model.Task{
		cloudTask("a", "u1", "local only"),
		cloudTask("b", "u1", "stale copy"),
	} {
		tt := task
		if err := local.UpsertTask(ctx, &tt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	remote.tasks["b"] = cloudTask("b", "u1", "fresh copy")
	remote.tasks["c"] = cloudTask("c", "u1", "cloud only")

	if err := svc.SyncFromCloud(ctx, "u1"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	got := localTaskIDs(t, local, "u1")
	if len(got) != 2 {
		t.Fatalf("expected exactly the remote set, got %v", got)
	}
	if _, ok := got["a"]; ok {
		t.Error("local-only task must be discarded")
	}
	if got["b"] != "fresh copy" {
		t.Errorf("remote version must win wholesale, got %q", got["b"])
	}
	if _, ok := got["c"]; !ok {
		t.Error("cloud-only task must be inserted")
	}
}

func TestSyncFromCloudLeavesOtherUsersAlone(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	other := cloudTask("x", "u2", "untouched")
	_ = local.UpsertTask(ctx, &other)
	remote.tasks["a"] = cloudTask("a", "u1", "mine")

	if err := svc.SyncFromCloud(ctx, "u1"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if got := localTaskIDs(t, local, "u2"); len(got) != 1 {
		t.Errorf("other user's tasks must survive, got %v", got)
	}
}

func TestSyncFromCloudFailureKeepsLocalData(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	remote.failWith = errors.New("connection refused")
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	existing := cloudTask("a", "u1", "keep me")
	_ = local.UpsertTask(ctx, &existing)

	err := svc.SyncFromCloud(ctx, "u1")
	if err == nil {
		t.Fatal("expected a network error")
	}
	var ex *apperrors.Exception
	if !errors.As(err, &ex) || ex.StatusCode != 502 {
		t.Errorf("expected status 502, got %v", err)
	}

	if got := localTaskIDs(t, local, "u1"); len(got) != 1 {
		t.Errorf("fetch failure must not touch local data, got %v", got)
	}
}

func TestSyncRequiresUser(t *testing.T) {
	svc := NewSyncService(newFakeCloudStore(), storage.NewMemory(), zap.NewNop())
	ctx := context.Background()

	if err := svc.SyncFromCloud(ctx, ""); !errors.Is(err, apperrors.ErrUserNotLoggedIn) {
		t.Errorf("pull: expected not-logged-in, got %v", err)
	}
	if err := svc.PushToCloud(ctx, ""); !errors.Is(err, apperrors.ErrUserNotLoggedIn) {
		t.Errorf("push: expected not-logged-in, got %v", err)
	}
}

func TestPushToCloudUploadsAllUserTasks(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	for _, task := range []model.Task{
		cloudTask("a", "u1", "one"),
		cloudTask("b", "u1", "two"),
		cloudTask("x", "u2", "not mine"),
	} {
		tt := task
		_ = local.UpsertTask(ctx, &tt)
	}

	if err := svc.PushToCloud(ctx, "u1"); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if len(remote.tasks) != 2 {
		t.Errorf("expected only u1's tasks uploaded, got %d", len(remote.tasks))
	}
	if _, ok := remote.tasks["x"]; ok {
		t.Error("another user's task leaked to the cloud")
	}
}

func TestDeleteTaskRemovesBothSides(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	task := cloudTask("a", "u1", "doomed")
	_ = local.UpsertTask(ctx, &task)
	remote.tasks["a"] = task

	if err := svc.DeleteTask(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got, _ := local.TaskByID(ctx, "a"); got != nil {
		t.Error("task still present locally")
	}
	if _, ok := remote.tasks["a"]; ok {
		t.Error("task still present remotely")
	}

	if err := svc.DeleteTask(ctx, "a"); err != nil {
		t.Errorf("repeat delete should succeed, got %v", err)
	}
}

func TestClearLocalKeepsCloud(t *testing.T) {
	local := storage.NewMemory()
	remote := newFakeCloudStore()
	svc := NewSyncService(remote, local, zap.NewNop())
	ctx := context.Background()

	task := cloudTask("a", "u1", "logout")
	_ = local.UpsertTask(ctx, &task)
	remote.tasks["a"] = task

	if err := svc.ClearLocal(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	tasks, _ := local.Tasks(ctx, storage.TaskFilter{})
	if len(tasks) != 0 {
		t.Errorf("expected empty local store, got %d tasks", len(tasks))
	}
	if len(remote.tasks) != 1 {
		t.Error("logout must not touch the remote store")
	}
}
