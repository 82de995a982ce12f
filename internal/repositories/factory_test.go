package repository

import (
	"context"
	"errors"
	"testing"

	"tidynotes.com/tidynotes/internal/storage"
)

func TestFactoryBindsByKind(t *testing.T) {
	memory := storage.NewMemory()
	local := storage.NewMemory()
	f := NewFactory(memory, local, BackendMemory, nil)

	memTasks := f.Tasks()
	if err := f.SetBackend(context.Background(), BackendLocal); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if f.Kind() != BackendLocal {
		t.Errorf("expected local kind, got %s", f.Kind())
	}
	if f.Tasks() == memTasks {
		t.Error("expected a different repository after the switch")
	}
}

func TestFactorySwitchToLocalRunsMigration(t *testing.T) {
	memory := storage.NewMemory()
	local := storage.NewMemory()

	calls := 0
	migrate := func(ctx context.Context, source, target storage.Backend) error {
		calls++
		if source != memory || target != local {
			t.Error("migration received the wrong backends")
		}
		return nil
	}

	f := NewFactory(memory, local, BackendMemory, migrate)
	if err := f.SetBackend(context.Background(), BackendLocal); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one migration run, got %d", calls)
	}
}

func TestFactorySwitchToMemorySkipsMigration(t *testing.T) {
	calls := 0
	migrate := func(ctx context.Context, source, target storage.Backend) error {
		calls++
		return nil
	}

	f := NewFactory(storage.NewMemory(), storage.NewMemory(), BackendLocal, migrate)
	if err := f.SetBackend(context.Background(), BackendMemory); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("rebind to memory must not migrate, got %d runs", calls)
	}
}

func TestFactoryFailedMigrationKeepsBinding(t *testing.T) {
	boom := errors.New("copy failed")
	migrate := func(ctx context.Context, source, target storage.Backend) error {
		return boom
	}

	f := NewFactory(storage.NewMemory(), storage.NewMemory(), BackendMemory, migrate)
	if err := f.SetBackend(context.Background(), BackendLocal); !errors.Is(err, boom) {
		t.Fatalf("expected migration error surfaced, got %v", err)
	}
	if f.Kind() != BackendMemory {
		t.Errorf("binding must not change on failure, got %s", f.Kind())
	}
}

func TestFactorySameKindIsNoop(t *testing.T) {
	calls := 0
	migrate := func(ctx context.Context, source, target storage.Backend) error {
		calls++
		return nil
	}

	f := NewFactory(storage.NewMemory(), storage.NewMemory(), BackendLocal, migrate)
	if err := f.SetBackend(context.Background(), BackendLocal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("same-kind switch must be a no-op, got %d migration runs", calls)
	}
}

func TestFactorySharesRepositoriesPerBackend(t *testing.T) {
	f := NewFactory(storage.NewMemory(), storage.NewMemory(), BackendMemory, nil)

	if f.Projects() != f.Projects() {
		t.Error("repeated lookups must return the same instance")
	}
}
