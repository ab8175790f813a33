package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/guregu/null/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

// Summarizer は百科事典から記事要約を取得するインターフェースです。
// 記事が存在しない場合は (nil, nil) を返します。
type Summarizer interface {
	SummarizeEntity(ctx context.Context, name string, locale language.Tag, maxSentences int) (*entity.ArticleSummary, error)
}

// BrandCatalog はナレッジグラフからブランド情報を取得するインターフェースです。
type BrandCatalog interface {
	FetchBrandProperties(ctx context.Context, brandName string, locale language.Tag) (*entity.BrandProfile, error)
}

// Geocoder は座標から住所を逆ジオコーディングするインターフェースです。
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (null.String, error)
}

// DescriptionGenerator は要約が得られなかったブランドの説明文を生成するインターフェースです。
type DescriptionGenerator interface {
	DescribeBrand(ctx context.Context, brandName string, locale language.Tag) (string, error)
}

// Enricher はランドマーク・ロゴのファクトを外部サービスの情報で補強します。
// どの補強呼び出しが失敗しても、ログに記録したうえで該当フィールドを未設定のまま完了します。
type Enricher struct {
	summarizer Summarizer
	brands     BrandCatalog
	geocoder   Geocoder
	describer  DescriptionGenerator
}

// NewEnricher はEnricherの新しいインスタンスを生成します。
// 各依存はnilを許容し、nilの場合は該当する補強を行いません。
func NewEnricher(s Summarizer, b BrandCatalog, g Geocoder, d DescriptionGenerator) *Enricher {
	return &Enricher{summarizer: s, brands: b, geocoder: g, describer: d}
}

// Enrich はラベル・ロゴ・ランドマークを補強し、完了イベントを返します。
// ランドマークとロゴの補強は並行に実行され、すべての呼び出しが終わるまで待機します。
func (e *Enricher) Enrich(ctx context.Context, labels []entity.LabelFact, logo *entity.LogoFact, landmark *entity.LandmarkFact, opts entity.AnalyzeOptions) entity.AnalysisDone {
	slog.Debug("analysis state changed", "state", entity.StateEnriching)

	var (
		g             errgroup.Group
		landmarkDesc  *entity.ArticleSummary
		landmarkAddr  null.String
		logoSummary   *entity.ArticleSummary
		brandProfile  *entity.BrandProfile
		fallbackDescr null.String
	)

	if landmark != nil {
		name := landmark.Name
		g.Go(func() error {
			landmarkDesc = e.summarize(ctx, name, opts)
			return nil
		})
		if opts.EnrichLandmarkAddress && e.geocoder != nil {
			lat, lon := landmark.Latitude, landmark.Longitude
			g.Go(func() error {
				addr, err := e.geocoder.ReverseGeocode(ctx, lat, lon)
				if err != nil {
					slog.Warn("landmark address lookup failed", "landmark", name, "error", err)
					return nil
				}
				landmarkAddr = addr
				return nil
			})
		}
	}

	if logo != nil {
		brand := logo.BrandName
		g.Go(func() error {
			logoSummary = e.summarize(ctx, brand, opts)
			if (logoSummary == nil || logoSummary.Extract == "") && e.describer != nil {
				fallbackDescr = e.describe(ctx, brand, opts.Locale)
			}
			return nil
		})
		if e.brands != nil {
			g.Go(func() error {
				p, err := e.brands.FetchBrandProperties(ctx, brand, opts.Locale)
				if err != nil {
					slog.Warn("brand properties lookup failed", "brand", brand, "error", err)
					return nil
				}
				brandProfile = p
				return nil
			})
		}
	}

	_ = g.Wait()

	done := entity.AnalysisDone{Labels: labels}
	if done.Labels == nil {
		done.Labels = []entity.LabelFact{}
	}
	if landmark != nil {
		f := entity.LandmarkEnrichment{Summary: landmarkDesc, Address: landmarkAddr}.ApplyTo(*landmark)
		done.Landmark = &f
	}
	if logo != nil {
		f := entity.LogoEnrichment{Summary: logoSummary, Brand: brandProfile, FallbackDescription: fallbackDescr}.ApplyTo(*logo)
		done.Logo = &f
	}

	slog.Debug("analysis state changed", "state", entity.StateEnriched)
	return done
}

func (e *Enricher) summarize(ctx context.Context, name string, opts entity.AnalyzeOptions) *entity.ArticleSummary {
	if e.summarizer == nil {
		return nil
	}
	s, err := e.summarizer.SummarizeEntity(ctx, name, opts.Locale, opts.MaxSentences)
	if err != nil {
		slog.Warn("article summary lookup failed", "name", name, "locale", opts.Locale.String(), "error", err)
		return nil
	}
	return s
}

func (e *Enricher) describe(ctx context.Context, brand string, locale language.Tag) null.String {
	text, err := e.describer.DescribeBrand(ctx, brand, locale)
	if err != nil {
		slog.Warn("brand description generation failed", "brand", brand, "error", err)
		return null.String{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return null.String{}
	}
	return null.StringFrom(text)
}
