package entity

import "github.com/guregu/null/v5"

// LabelFact は画像に付与されたラベルです。
type LabelFact struct {
	Name       string
	Confidence float32
}

// LogoFact は検出されたブランドと、その補強情報です。
// BrandName以外のフィールドは補強が成功した場合のみ値を持ちます。
type LogoFact struct {
	BrandName    string
	Description  null.String
	SummaryURL   null.String
	LogoImageURL null.String
	Properties   []Property
}

// LandmarkFact は検出されたランドマークと、その補強情報です。
type LandmarkFact struct {
	Name        string
	Address     null.String
	Description null.String
	SummaryURL  null.String
	Latitude    float64
	Longitude   float64
}

// ArticleSummary は百科事典記事の要約です。
type ArticleSummary struct {
	Title      string
	Extract    string
	ArticleURL string
}

// BrandProfile はナレッジグラフから取得したブランド情報です。
type BrandProfile struct {
	LogoImageURL null.String
	Properties   []Property
}
