// Package dto はimageanalysisフィーチャーのHTTP APIで使うデータ転送オブジェクトを定義します。
package dto

// AnalyzeRequest は POST /v1/analyses のフォームフィールドです。
// 未指定のフィールドはnilのままとなり、既定値が使われます。
type AnalyzeRequest struct {
	DetectLabels          *bool  `form:"detect_labels"`
	DetectLogos           *bool  `form:"detect_logos"`
	DetectLandmarks       *bool  `form:"detect_landmarks"`
	MaxLabels             *int   `form:"max_labels"`
	MaxLogos              *int   `form:"max_logos"`
	MaxLandmarks          *int   `form:"max_landmarks"`
	ImageQuality          *int   `form:"image_quality"`
	EnrichLandmarkAddress *bool  `form:"enrich_landmark_address"`
	Locale                string `form:"locale"`
	MaxSentences          *int   `form:"max_sentences"`
}
