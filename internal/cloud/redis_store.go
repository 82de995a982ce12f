package cloud

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	model "tidynotes.com/tidynotes/internal/models"
)

// RedisStore keeps JSON documents at <prefix>:tasks:<id> and
// <prefix>:users:<userId>, with a per-user id set at
// <prefix>:tasks:user:<userId> backing the owner equality query.
// Timestamps round-trip as RFC 3339 with nanoseconds.
type RedisStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisStore(client rueidis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "tidynotes"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) taskKey(id string) string {
	return s.prefix + ":tasks:" + id
}

func (s *RedisStore) userIndexKey(userID string) string {
	return s.prefix + ":tasks:user:" + userID
}

func (s *RedisStore) profileKey(userID string) string {
	return s.prefix + ":users:" + userID
}

func (s *RedisStore) PutTask(ctx context.Context, task model.Task) error {
	doc, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task document: %w", err)
	}

	if err := s.client.Do(
		ctx,
		s.client.B().Set().Key(s.taskKey(task.ID)).Value(string(doc)).Build(),
	).Error(); err != nil {
		return err
	}

	return s.client.Do(
		ctx,
		s.client.B().Sadd().Key(s.userIndexKey(task.UserID)).Member(task.ID).Build(),
	).Error()
}

func (s *RedisStore) TasksByUser(ctx context.Context, userID string) ([]model.Task, error) {
	ids, err := s.client.Do(
		ctx,
		s.client.B().Smembers().Key(s.userIndexKey(userID)).Build(),
	).AsStrSlice()
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		raw, err := s.client.Do(
			ctx,
			s.client.B().Get().Key(s.taskKey(id)).Build(),
		).ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				// Stale index entry; the document was deleted.
				continue
			}
			return nil, err
		}

		task, err := decodeTaskOwnedBy(raw, userID)
		if err != nil {
			return nil, fmt.Errorf("decode task document %s: %w", id, err)
		}
		if task == nil {
			// Stale index entry; the owner changed after indexing. Drop it
			// so the next query does not pay for the dead GET again.
			_ = s.client.Do(
				ctx,
				s.client.B().Srem().Key(s.userIndexKey(userID)).Member(id).Build(),
			).Error()
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// decodeTaskOwnedBy parses a task document and enforces the owner equality
// the index set only approximates. A document whose user_id no longer
// matches returns (nil, nil): the index entry is stale, not the document.
func decodeTaskOwnedBy(raw, userID string) (*model.Task, error) {
	var task model.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, nil
	}
	return &task, nil
}

func (s *RedisStore) DeleteTask(ctx context.Context, id string) error {
	raw, err := s.client.Do(
		ctx,
		s.client.B().Get().Key(s.taskKey(id)).Build(),
	).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil
		}
		return err
	}

	var task model.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return fmt.Errorf("decode task document %s: %w", id, err)
	}

	if err := s.client.Do(
		ctx,
		s.client.B().Del().Key(s.taskKey(id)).Build(),
	).Error(); err != nil {
		return err
	}

	return s.client.Do(
		ctx,
		s.client.B().Srem().Key(s.userIndexKey(task.UserID)).Member(id).Build(),
	).Error()
}

func (s *RedisStore) PutProfile(ctx context.Context, profile model.UserProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile document: %w", err)
	}

	return s.client.Do(
		ctx,
		s.client.B().Set().Key(s.profileKey(profile.UserID)).Value(string(doc)).Build(),
	).Error()
}

func (s *RedisStore) ProfileByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	raw, err := s.client.Do(
		ctx,
		s.client.B().Get().Key(s.profileKey(userID)).Build(),
	).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode profile document %s: %w", userID, err)
	}
	return &profile, nil
}

func (s *RedisStore) DeleteProfile(ctx context.Context, userID string) error {
	return s.client.Do(
		ctx,
		s.client.B().Del().Key(s.profileKey(userID)).Build(),
	).Error()
}
