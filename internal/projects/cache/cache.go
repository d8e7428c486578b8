// Package cache wraps the project stores with a redis read-through cache.
// Reads of the project list and single projects are served from redis when
// present; every write invalidates the keys it affects. Redis failures are
// logged and fall through to the wrapped store.
//
// Each cached key has a generation counter that every invalidation bumps. A
// read fills the cache only if the generation it saw before reading storage
// is still current, so a fill racing a write never restores the old value.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/service"
)

const (
	keyPrefix        = "tracker:"
	projectListKey   = keyPrefix + "projects"
	projectKeyPrefix = keyPrefix + "project:" // tracker:project:{id}
	genPrefix        = keyPrefix + "gen:"     // tracker:gen:{key}
	defaultTTL       = 5 * time.Minute
)

var errStaleFill = errors.New("cache generation changed")

// Cache holds the redis client and entry lifetime shared by the decorators.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func projectKey(id int64) string {
	return projectKeyPrefix + strconv.FormatInt(id, 10)
}

func genKey(key string) string {
	return genPrefix + key[len(keyPrefix):]
}

// load decodes the value at key into dst. It reports false on a miss or any
// redis or decode failure.
func (c *Cache) load(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logging.FromContext(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logging.FromContext(ctx).Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// generation returns the current generation of key. ok is false when redis
// cannot answer, in which case the caller must not fill.
func (c *Cache) generation(ctx context.Context, key string) (gen int64, ok bool) {
	gen, err := c.client.Get(ctx, genKey(key)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		logging.FromContext(ctx).Warn("cache generation read failed", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// fill stores v at key unless key was invalidated after gen was read.
func (c *Cache) fill(ctx context.Context, key string, gen int64, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(ctx).Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	gk := genKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, gk)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		logging.FromContext(ctx).Debug("cache fill skipped after invalidation", zap.String("key", key))
	default:
		logging.FromContext(ctx).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops the list key and the key of every given project and
// bumps their generations.
func (c *Cache) invalidate(ctx context.Context, projectIDs ...int64) {
	keys := make([]string, 0, len(projectIDs)+1)
	keys = append(keys, projectListKey)
	for _, id := range projectIDs {
		keys = append(keys, projectKey(id))
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, genKey(key))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		logging.FromContext(ctx).Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Ping checks the redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// ProjectStore is a caching service.ProjectStore.
type ProjectStore struct {
	next  service.ProjectStore
	cache *Cache
}

func NewProjectStore(next service.ProjectStore, c *Cache) *ProjectStore {
	return &ProjectStore{next: next, cache: c}
}

func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	var cached []domain.Project
	if s.cache.load(ctx, projectListKey, &cached) {
		return cached, nil
	}

	gen, fillable := s.cache.generation(ctx, projectListKey)
	out, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if fillable {
		s.cache.fill(ctx, projectListKey, gen, out)
	}
	return out, nil
}

func (s *ProjectStore) Get(ctx context.Context, id int64) (*domain.Project, error) {
	key := projectKey(id)
	var cached domain.Project
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	gen, fillable := s.cache.generation(ctx, key)
	p, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if fillable {
		s.cache.fill(ctx, key, gen, p)
	}
	return p, nil
}

func (s *ProjectStore) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.cache.client.Exists(ctx, projectKey(id)).Result()
	if err == nil && n > 0 {
		return true, nil
	}
	return s.next.Exists(ctx, id)
}

func (s *ProjectStore) Create(ctx context.Context, p *domain.Project) error {
	if err := s.next.Create(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *ProjectStore) Update(ctx context.Context, p *domain.Project) error {
	if err := s.next.Update(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx, p.ID)
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, id)
	return nil
}

// ProgressStore is a service.ProgressStore that invalidates the cached
// parent project on every write. Progress reads are not cached.
type ProgressStore struct {
	next  service.ProgressStore
	cache *Cache
}

func NewProgressStore(next service.ProgressStore, c *Cache) *ProgressStore {
	return &ProgressStore{next: next, cache: c}
}

func (s *ProgressStore) ListByProject(ctx context.Context, projectID int64) ([]domain.Progress, error) {
	return s.next.ListByProject(ctx, projectID)
}

func (s *ProgressStore) Get(ctx context.Context, id int64) (*domain.Progress, error) {
	return s.next.Get(ctx, id)
}

func (s *ProgressStore) Create(ctx context.Context, p *domain.Progress) error {
	if err := s.next.Create(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx, p.ProjectID)
	return nil
}

func (s *ProgressStore) Delete(ctx context.Context, projectID, id int64) error {
	if err := s.next.Delete(ctx, projectID, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, projectID)
	return nil
}
