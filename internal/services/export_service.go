package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

var ErrInvalidExportDocument = errors.New("invalid export document")

// ExportDocument is the structured backup format. Field order is the stable
// key order; timestamps serialize as ISO-8601.
type ExportDocument struct {
	ExportedAt time.Time       `json:"exported_at"`
	Projects   []model.Project `json:"projects"`
	Tasks      []model.Task    `json:"tasks"`
}

// ExportService serializes the full local project and task collections and
// restores them. Import is all-or-nothing only up to deserialization: a
// failure after the reset leaves the store partially populated.
type ExportService struct {
	local storage.Backend
	log   *zap.Logger
}

func NewExportService(local storage.Backend, log *zap.Logger) *ExportService {
	return &ExportService{local: local, log: log}
}

func (s *ExportService) ExportAll(ctx context.Context) ([]byte, error) {
	projects, err := s.local.Projects(ctx)
	if err != nil {
		return nil, apperrors.ErrProjectFetchFailed
	}
	tasks, err := s.local.Tasks(ctx, storage.TaskFilter{})
	if err != nil {
		return nil, apperrors.ErrTaskFetchFailed
	}

	doc := ExportDocument{
		ExportedAt: time.Now().UTC(),
		Projects:   projects,
		Tasks:      tasks,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperrors.ErrTaskFetchFailed
	}

	s.log.Info("exported local store",
		zap.Int("projects", len(projects)),
		zap.Int("tasks", len(tasks)),
	)
	return data, nil
}

// ImportAll deserializes first; a malformed document causes no reset. It
// then clears the local store and re-inserts projects before tasks.
func (s *ExportService) ImportAll(ctx context.Context, data []byte) error {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrInvalidExportDocument
	}

	if err := s.local.DeleteAllTasks(ctx); err != nil {
		return apperrors.ErrTaskDeleteFailed
	}
	if err := s.local.DeleteAllProjects(ctx); err != nil {
		return apperrors.ErrProjectDeleteFailed
	}

	for i := range doc.Projects {
		if err := s.local.UpsertProject(ctx, &doc.Projects[i]); err != nil {
			return apperrors.ErrProjectCreateFailed
		}
	}
	for i := range doc.Tasks {
		if err := s.local.UpsertTask(ctx, &doc.Tasks[i]); err != nil {
			return apperrors.ErrTaskCreateFailed
		}
	}

	s.log.Info("imported local store",
		zap.Int("projects", len(doc.Projects)),
		zap.Int("tasks", len(doc.Tasks)),
	)
	return nil
}
