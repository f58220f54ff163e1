package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drillbank/drillbank-backend/internal/config"
	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a user has no stored exam session.
var ErrNoSession = errors.New("no exam session stored for user")

// ExamSessionStore persists in-progress exam session state in Redis, one
// key per user. Each Save replaces the whole serialized value, so
// concurrent requests from the same user resolve last-write-wins — there
// is deliberately no lock around the read-modify-write cycle. Stale
// sessions carry no TTL; they are simply overwritten by the next setup.
type ExamSessionStore struct {
	rdb *redis.Client
}

// NewExamSessionStore creates a new ExamSessionStore.
func NewExamSessionStore(rdb *redis.Client) *ExamSessionStore {
	return &ExamSessionStore{rdb: rdb}
}

// Save atomically replaces the user's session state.
func (s *ExamSessionStore) Save(ctx context.Context, userID int, state *model.ExamSessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.UserExamSessionKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get loads the user's session state, or ErrNoSession.
func (s *ExamSessionStore) Get(ctx context.Context, userID int) (*model.ExamSessionState, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.UserExamSessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(raw)
}

// Pop atomically loads and deletes the user's session state. Scoring goes
// through Pop, which is what makes it a one-time terminal operation: a
// second Pop without a new Save returns ErrNoSession.
func (s *ExamSessionStore) Pop(ctx context.Context, userID int) (*model.ExamSessionState, error) {
	raw, err := s.rdb.GetDel(ctx, config.CacheKey.UserExamSessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("pop session: %w", err)
	}
	return decodeSession(raw)
}

// Clear discards the user's session state, if any.
func (s *ExamSessionStore) Clear(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, config.CacheKey.UserExamSessionKey(userID)).Err()
}

func decodeSession(raw []byte) (*model.ExamSessionState, error) {
	state := &model.ExamSessionState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return state, nil
}
