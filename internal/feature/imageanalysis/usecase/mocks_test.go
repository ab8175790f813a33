package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/guregu/null/v5"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

// mockAnnotator はAnnotatorインターフェースのモック実装です。
type mockAnnotator struct {
	AnnotateFunc  func(ctx context.Context, imageData []byte, opts entity.AnnotateOptions) (*entity.AnnotationResult, error)
	AnnotateCalls atomic.Int32
}

func (m *mockAnnotator) Annotate(ctx context.Context, imageData []byte, opts entity.AnnotateOptions) (*entity.AnnotationResult, error) {
	m.AnnotateCalls.Add(1)
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(ctx, imageData, opts)
	}
	return nil, errors.New("AnnotateFunc is not implemented")
}

// mockSummarizer はSummarizerインターフェースのモック実装です。
type mockSummarizer struct {
	SummarizeEntityFunc  func(ctx context.Context, name string, locale language.Tag, maxSentences int) (*entity.ArticleSummary, error)
	SummarizeEntityCalls atomic.Int32
}

func (m *mockSummarizer) SummarizeEntity(ctx context.Context, name string, locale language.Tag, maxSentences int) (*entity.ArticleSummary, error) {
	m.SummarizeEntityCalls.Add(1)
	if m.SummarizeEntityFunc != nil {
		return m.SummarizeEntityFunc(ctx, name, locale, maxSentences)
	}
	return nil, nil
}

// mockBrandCatalog はBrandCatalogインターフェースのモック実装です。
type mockBrandCatalog struct {
	FetchBrandPropertiesFunc  func(ctx context.Context, brandName string, locale language.Tag) (*entity.BrandProfile, error)
	FetchBrandPropertiesCalls atomic.Int32
}

func (m *mockBrandCatalog) FetchBrandProperties(ctx context.Context, brandName string, locale language.Tag) (*entity.BrandProfile, error) {
	m.FetchBrandPropertiesCalls.Add(1)
	if m.FetchBrandPropertiesFunc != nil {
		return m.FetchBrandPropertiesFunc(ctx, brandName, locale)
	}
	return nil, nil
}

// mockGeocoder はGeocoderインターフェースのモック実装です。
type mockGeocoder struct {
	ReverseGeocodeFunc  func(ctx context.Context, lat, lon float64) (null.String, error)
	ReverseGeocodeCalls atomic.Int32
}

func (m *mockGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (null.String, error) {
	m.ReverseGeocodeCalls.Add(1)
	if m.ReverseGeocodeFunc != nil {
		return m.ReverseGeocodeFunc(ctx, lat, lon)
	}
	return null.String{}, nil
}

// mockDescriptionGenerator はDescriptionGeneratorインターフェースのモック実装です。
type mockDescriptionGenerator struct {
	DescribeBrandFunc  func(ctx context.Context, brandName string, locale language.Tag) (string, error)
	DescribeBrandCalls atomic.Int32
}

func (m *mockDescriptionGenerator) DescribeBrand(ctx context.Context, brandName string, locale language.Tag) (string, error) {
	m.DescribeBrandCalls.Add(1)
	if m.DescribeBrandFunc != nil {
		return m.DescribeBrandFunc(ctx, brandName, locale)
	}
	return "", nil
}

// memoryResultStore はResultStoreインターフェースのテスト用実装です。
// Saveのたびにsavedチャネルへレコードを通知します。
type memoryResultStore struct {
	mu      sync.Mutex
	records map[string]entity.AnalysisRecord
	saved   chan entity.AnalysisRecord
	SaveErr error
}

func newMemoryResultStore() *memoryResultStore {
	return &memoryResultStore{
		records: map[string]entity.AnalysisRecord{},
		saved:   make(chan entity.AnalysisRecord, 8),
	}
}

func (s *memoryResultStore) Save(ctx context.Context, rec entity.AnalysisRecord) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	s.saved <- rec
	return nil
}

func (s *memoryResultStore) Find(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return &rec, nil
}
