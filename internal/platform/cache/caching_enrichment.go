// Package cache provides Redis caching decorators for the enrichment sources.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

const defaultTTL = 24 * time.Hour

// CachingSummarizer decorates a Summarizer with Redis caching.
// A missing article is cached as well, so repeated lookups of an unknown
// name do not hit the encyclopedia again until the entry expires.
type CachingSummarizer struct {
	inner     usecase.Summarizer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Summarizer = (*CachingSummarizer)(nil)

// NewCachingSummarizer decorates a Summarizer with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "wiki".
func NewCachingSummarizer(rdb *redis.Client, ttl time.Duration, inner usecase.Summarizer, namespace string) *CachingSummarizer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = "wiki"
	}
	return &CachingSummarizer{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// SummarizeEntity checks the cache first, then falls back to the inner summarizer.
// Errors are never cached.
func (c *CachingSummarizer) SummarizeEntity(ctx context.Context, name string, locale language.Tag, maxSentences int) (*entity.ArticleSummary, error) {
	if c.rdb == nil {
		return c.inner.SummarizeEntity(ctx, name, locale, maxSentences)
	}

	key := fmt.Sprintf("%s:%s:%d:%s", c.namespace, safe(locale.String()), maxSentences, safe(name))
	return cached(ctx, c.rdb, key, c.ttl, func() (*entity.ArticleSummary, error) {
		return c.inner.SummarizeEntity(ctx, name, locale, maxSentences)
	})
}

// CachingBrandCatalog decorates a BrandCatalog with Redis caching.
type CachingBrandCatalog struct {
	inner     usecase.BrandCatalog
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BrandCatalog = (*CachingBrandCatalog)(nil)

// NewCachingBrandCatalog decorates a BrandCatalog with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "brand".
func NewCachingBrandCatalog(rdb *redis.Client, ttl time.Duration, inner usecase.BrandCatalog, namespace string) *CachingBrandCatalog {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = "brand"
	}
	return &CachingBrandCatalog{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// FetchBrandProperties checks the cache first, then falls back to the inner catalog.
func (c *CachingBrandCatalog) FetchBrandProperties(ctx context.Context, brandName string, locale language.Tag) (*entity.BrandProfile, error) {
	if c.rdb == nil {
		return c.inner.FetchBrandProperties(ctx, brandName, locale)
	}

	key := fmt.Sprintf("%s:%s:%s", c.namespace, safe(locale.String()), safe(brandName))
	return cached(ctx, c.rdb, key, c.ttl, func() (*entity.BrandProfile, error) {
		return c.inner.FetchBrandProperties(ctx, brandName, locale)
	})
}

// cached returns the value stored under key, or calls load and stores its result.
func cached[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func() (*T, error)) (*T, error) {
	// 1) Check cache
	if b, err := rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out *T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the remote source
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = rdb.Set(ctx, key, b, ttl).Err()
	}
	return out, nil
}

// safe escapes a key segment so that distinct names never share a key.
// The segment contains no spaces or colons afterwards.
func safe(s string) string {
	return url.QueryEscape(s)
}
