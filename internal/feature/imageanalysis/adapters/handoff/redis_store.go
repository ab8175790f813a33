package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

// DefaultTTL は解析結果を保持する既定の期間です。
const DefaultTTL = 10 * time.Minute

// RedisResultStore はRedisに解析レコードをTTL付きで保存します。
type RedisResultStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisResultStoreがResultStoreを実装していることをコンパイル時に検証します。
var _ usecase.ResultStore = (*RedisResultStore)(nil)

// NewRedisResultStore はRedisResultStoreの新しいインスタンスを生成します。
// ttlが0以下の場合はDefaultTTL、prefixが空の場合は "analysis" を使います。
func NewRedisResultStore(client *redis.Client, prefix string, ttl time.Duration) *RedisResultStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "analysis"
	}
	return &RedisResultStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisResultStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Save はレコードを保存します。同じIDのレコードは上書きされ、TTLも更新されます。
func (s *RedisResultStore) Save(ctx context.Context, rec entity.AnalysisRecord) error {
	data, err := json.Marshal(toModel(rec))
	if err != nil {
		return fmt.Errorf("failed to marshal analysis record: %w", err)
	}
	return s.client.Set(ctx, s.key(rec.ID), data, s.ttl).Err()
}

// Find はIDに対応するレコードを返します。
func (s *RedisResultStore) Find(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}

	var m recordModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis record: %w", err)
	}
	return m.toEntity(), nil
}
