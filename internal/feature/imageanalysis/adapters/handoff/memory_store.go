package handoff

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

// MemoryResultStore はプロセス内メモリに解析レコードをTTL付きで保存します。
// Redisが利用できない場合のフォールバックです。
type MemoryResultStore struct {
	cache *gocache.Cache
}

// MemoryResultStoreがResultStoreを実装していることをコンパイル時に検証します。
var _ usecase.ResultStore = (*MemoryResultStore)(nil)

// NewMemoryResultStore はMemoryResultStoreの新しいインスタンスを生成します。
func NewMemoryResultStore(ttl time.Duration) *MemoryResultStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryResultStore{cache: gocache.New(ttl, 2*ttl)}
}

// Save はレコードを保存します。
func (s *MemoryResultStore) Save(_ context.Context, rec entity.AnalysisRecord) error {
	s.cache.SetDefault(rec.ID, rec)
	return nil
}

// Find はIDに対応するレコードのコピーを返します。
func (s *MemoryResultStore) Find(_ context.Context, id string) (*entity.AnalysisRecord, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	rec, ok := v.(entity.AnalysisRecord)
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return &rec, nil
}
