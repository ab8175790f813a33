package entity

import (
	"math"
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAnnotationResult(t *testing.T) {
	t.Parallel()

	labels := []LabelAnnotation{
		{Description: "Tower", Confidence: 1.2},
		{Description: "Sky", Confidence: float32(math.NaN())},
		{Description: "City", Confidence: -0.1},
	}

	got := NewAnnotationResult(labels, nil, nil, 2)

	assert.Equal(t, []LabelAnnotation{
		{Description: "Tower", Confidence: 1},
		{Description: "Sky", Confidence: 0},
	}, got.Labels)
	assert.NotNil(t, got.Logos)
	_, ok := got.Logo()
	assert.False(t, ok)
	_, ok = got.Landmark()
	assert.False(t, ok)

	empty := NewAnnotationResult(nil, nil, nil, 5)
	assert.NotNil(t, empty.Labels)
	assert.Empty(t, empty.Labels)
}

func TestAnalyzeOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(o *AnalyzeOptions)
		wantErr bool
	}{
		{"defaults", func(o *AnalyzeOptions) {}, false},
		{"quality 0", func(o *AnalyzeOptions) { o.ImageQuality = 0 }, false},
		{"quality 100", func(o *AnalyzeOptions) { o.ImageQuality = 100 }, false},
		{"quality 101", func(o *AnalyzeOptions) { o.ImageQuality = 101 }, true},
		{"negative labels", func(o *AnalyzeOptions) { o.MaxLabels = -1 }, true},
		{"labels at limit", func(o *AnalyzeOptions) { o.MaxLabels = MaxResultsLimit }, false},
		{"labels over limit", func(o *AnalyzeOptions) { o.MaxLabels = 1<<32 + 1 }, true},
		{"logos overflow int32", func(o *AnalyzeOptions) { o.MaxLogos = 1 << 31 }, true},
		{"landmarks over limit", func(o *AnalyzeOptions) { o.MaxLandmarks = MaxResultsLimit + 1 }, true},
		{"negative sentences", func(o *AnalyzeOptions) { o.MaxSentences = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultAnalyzeOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLandmarkEnrichment_ApplyTo(t *testing.T) {
	t.Parallel()

	base := LandmarkFact{Name: "Eiffel Tower", Latitude: 48.8584, Longitude: 2.2945}

	t.Run("empty enrichment keeps fact", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, base, LandmarkEnrichment{}.ApplyTo(base))
	})

	t.Run("summary and address", func(t *testing.T) {
		t.Parallel()
		got := LandmarkEnrichment{
			Summary: &ArticleSummary{Title: "Eiffel Tower", Extract: "Wrought-iron tower.", ArticleURL: "https://en.wikipedia.org/wiki/Eiffel_Tower"},
			Address: null.StringFrom("Champ de Mars, Paris"),
		}.ApplyTo(base)

		assert.Equal(t, "Wrought-iron tower.", got.Description.String)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Eiffel_Tower", got.SummaryURL.String)
		assert.Equal(t, "Champ de Mars, Paris", got.Address.String)
		assert.Equal(t, 48.8584, got.Latitude)
	})
}

func TestLogoEnrichment_ApplyTo(t *testing.T) {
	t.Parallel()

	base := LogoFact{BrandName: "Google"}
	props := []Property{{Kind: PropertyWebsite, Value: "https://google.com", ActionURL: null.StringFrom("https://google.com")}}

	got := LogoEnrichment{
		Brand:               &BrandProfile{LogoImageURL: null.StringFrom("https://example.com/logo.svg"), Properties: props},
		FallbackDescription: null.StringFrom("Search company."),
	}.ApplyTo(base)

	assert.Equal(t, "Google", got.BrandName)
	assert.Equal(t, "Search company.", got.Description.String)
	assert.False(t, got.SummaryURL.Valid)
	assert.Equal(t, props, got.Properties)
	assert.Equal(t, "https://example.com/logo.svg", got.LogoImageURL.String)
}

func TestPropertyKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "WEBSITE", PropertyWebsite.String())
	assert.Equal(t, "LICENSE", PropertyLicense.String())
	assert.Equal(t, "PropertyKind(99)", PropertyKind(99).String())

	k, ok := ParsePropertyKind("EMPLOYEES")
	assert.True(t, ok)
	assert.Equal(t, PropertyEmployees, k)
}
