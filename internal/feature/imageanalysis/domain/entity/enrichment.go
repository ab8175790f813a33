package entity

import (
	"github.com/guregu/null/v5"
	"golang.org/x/text/language"
)

// EnrichmentQuery は百科事典への1回の問い合わせ内容です。
type EnrichmentQuery struct {
	ArticleName string
	APILocale   language.Tag
	WikiURL     string
}

// LandmarkEnrichment はランドマーク補強の各呼び出し結果を保持します。
// 各フィールドは1つの呼び出しだけが書き込みます。
type LandmarkEnrichment struct {
	Summary *ArticleSummary
	Address null.String
}

// ApplyTo は補強結果を反映したLandmarkFactのコピーを返します。
func (e LandmarkEnrichment) ApplyTo(f LandmarkFact) LandmarkFact {
	if e.Summary != nil {
		if e.Summary.Title != "" {
			f.Name = e.Summary.Title
		}
		if e.Summary.Extract != "" {
			f.Description = null.StringFrom(e.Summary.Extract)
		}
		if e.Summary.ArticleURL != "" {
			f.SummaryURL = null.StringFrom(e.Summary.ArticleURL)
		}
	}
	if e.Address.Valid && e.Address.String != "" {
		f.Address = e.Address
	}
	return f
}

// LogoEnrichment はロゴ補強の各呼び出し結果を保持します。
type LogoEnrichment struct {
	Summary *ArticleSummary
	Brand   *BrandProfile
	// FallbackDescription は要約が得られなかった場合の生成説明文です。
	FallbackDescription null.String
}

// ApplyTo は補強結果を反映したLogoFactのコピーを返します。
func (e LogoEnrichment) ApplyTo(f LogoFact) LogoFact {
	if e.Summary != nil {
		if e.Summary.Title != "" {
			f.BrandName = e.Summary.Title
		}
		if e.Summary.Extract != "" {
			f.Description = null.StringFrom(e.Summary.Extract)
		}
		if e.Summary.ArticleURL != "" {
			f.SummaryURL = null.StringFrom(e.Summary.ArticleURL)
		}
	}
	if !f.Description.Valid && e.FallbackDescription.Valid {
		f.Description = e.FallbackDescription
	}
	if e.Brand != nil {
		f.LogoImageURL = e.Brand.LogoImageURL
		f.Properties = append([]Property(nil), e.Brand.Properties...)
	}
	return f
}
