package xlimit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// LocalStore 进程内存储：每个用户一个按时间递增的时间戳队列。
type LocalStore struct {
	mu    sync.Mutex
	users map[string][]time.Time
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore 创建进程内存储
func NewLocalStore() *LocalStore {
	return &LocalStore{users: make(map[string][]time.Time)}
}

// cleanup 移除过期时间戳，返回存活队列。调用方持有锁。
func (s *LocalStore) cleanup(key string, now time.Time, window time.Duration) []time.Time {
	q, ok := s.users[key]
	if !ok {
		return nil
	}
	cutoff := now.Add(-window)
	i := 0
	for i < len(q) && !q[i].After(cutoff) {
		i++
	}
	if i == len(q) {
		delete(s.users, key)
		return nil
	}
	if i > 0 {
		q = slices.Delete(q, 0, i)
		s.users[key] = q
	}
	return q
}

// Count 实现 Store
func (s *LocalStore) Count(_ context.Context, key string, now time.Time, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.cleanup(key, now, window)
	if len(q) == 0 {
		return 0, time.Time{}, nil
	}
	return len(q), q[0], nil
}

// RecordIfAllowed 实现 Store
func (s *LocalStore) RecordIfAllowed(_ context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.cleanup(key, now, window)
	if len(q) >= limit {
		return false, len(q), nil
	}
	s.users[key] = append(q, now)
	return true, len(q) + 1, nil
}

// Reset 实现 Store
func (s *LocalStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, key)
	return nil
}

// Type 实现 Store
func (s *LocalStore) Type() string {
	return StoreTypeLocal
}

// Users 返回当前仍有时间戳记录的用户数（不做清理）
func (s *LocalStore) Users() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
