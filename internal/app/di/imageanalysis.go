// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"cloudvision_backend/internal/app/config"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/gemini"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/geocoding"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/vision"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/wikidata"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/wikipedia"
	"cloudvision_backend/internal/feature/imageanalysis/transport/handler"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
	"cloudvision_backend/internal/platform/cache"
	infrahttp "cloudvision_backend/internal/platform/http"
	"cloudvision_backend/internal/shared/ratelimiter"
)

// wikimediaIdleConnsPerHost covers the concurrent langlinks, extract and SPARQL
// requests one analysis issues against the same Wikimedia hosts.
const wikimediaIdleConnsPerHost = 8

// NewWikimediaHTTPClient returns the HTTP client shared by the Wikipedia and
// Wikidata adapters.
func NewWikimediaHTTPClient(timeout time.Duration) *http.Client {
	return infrahttp.NewHTTPClient(timeout, infrahttp.WithMaxIdleConnsPerHost(wikimediaIdleConnsPerHost))
}

// ImageAnalysis bundles the wired imageanalysis feature.
type ImageAnalysis struct {
	Usecase handler.AnalysisUsecase
	Handler *handler.AnalysisHandler
	close   func() error
}

// Close releases the Cloud Vision client.
func (ia *ImageAnalysis) Close() error {
	if ia.close == nil {
		return nil
	}
	return ia.close()
}

// NewImageAnalysis builds every client, cache and store of the imageanalysis
// feature. rdb may be nil, in which case lookups are not cached and finished
// analyses are kept in process memory.
func NewImageAnalysis(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*ImageAnalysis, error) {
	annotator, err := NewAnnotator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	wcfg := cfg.WikipediaClientConfig()
	wiki := wikipedia.NewClient(wcfg,
		NewWikimediaHTTPClient(wcfg.Timeout),
		ratelimiter.NewRateLimiter("wikipedia", wcfg.RequestsPerSecond, wcfg.Burst))

	dcfg := cfg.WikidataClientConfig()
	brands := wikidata.NewClient(dcfg,
		NewWikimediaHTTPClient(dcfg.Timeout),
		ratelimiter.NewRateLimiter("wikidata", dcfg.RequestsPerSecond, dcfg.Burst),
		wiki)

	gcfg := cfg.GeocodingClientConfig()
	geocoder := geocoding.NewClient(gcfg, infrahttp.NewHTTPClient(gcfg.Timeout))

	enricher := usecase.NewEnricher(
		cache.NewCachingSummarizer(rdb, cfg.Cache.EnrichmentTTL, wiki, "wiki"),
		cache.NewCachingBrandCatalog(rdb, cfg.Cache.EnrichmentTTL, brands, "brand"),
		geocoder,
		NewDescriptionGenerator(ctx, cfg.GeminiClientConfig()),
	)

	uc := usecase.NewAnalysisUsecase(annotator, enricher, NewResultStore(rdb, cfg.Cache.ResultTTL))
	return &ImageAnalysis{
		Usecase: uc,
		Handler: handler.NewAnalysisHandler(uc),
		close:   annotator.Close,
	}, nil
}

// NewAnnotator creates a Cloud Vision annotator authenticated with an API key or ADC.
func NewAnnotator(ctx context.Context, cfg *config.Config) (*vision.VisionAnnotator, error) {
	vcfg := cfg.VisionClientConfig()
	hc, err := vision.NewHTTPClient(ctx, vcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision http client: %w", err)
	}
	return vision.NewVisionAnnotator(ctx, vcfg, hc)
}

// NewDescriptionGenerator returns the Gemini fallback, or nil when it is disabled
// or cannot be created.
func NewDescriptionGenerator(ctx context.Context, cfg gemini.Config) usecase.DescriptionGenerator {
	if !cfg.Enabled {
		return nil
	}
	d, err := gemini.NewGeminiDescriber(ctx, cfg)
	if err != nil {
		slog.Warn("Gemini unavailable. Running without generated descriptions.", "error", err)
		return nil
	}
	return d
}
