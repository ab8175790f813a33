// Package entity はimageanalysisフィーチャーのドメインモデルを定義します。
package entity

import "math"

// LatLng は緯度・経度の組を表します。
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// LabelAnnotation は画像に付与されたラベル候補です。
type LabelAnnotation struct {
	Description string
	Confidence  float32 // 0.0 ~ 1.0
}

// LogoAnnotation は画像から検出されたロゴ候補です。
type LogoAnnotation struct {
	Description string
	Confidence  float32 // 0.0 ~ 1.0
}

// LandmarkAnnotation は画像から検出されたランドマーク候補です。
type LandmarkAnnotation struct {
	Description string
	Locations   []LatLng
}

// AnnotationResult はVision APIの生レスポンスを正規化したものです。
type AnnotationResult struct {
	Labels    []LabelAnnotation
	Logos     []LogoAnnotation
	Landmarks []LandmarkAnnotation
}

// NewAnnotationResult は信頼度を[0,1]に丸め、ラベル数をmaxLabelsで制限したAnnotationResultを生成します。
// maxLabelsが0以下の場合は制限しません。Labelsは常に非nilです。
func NewAnnotationResult(labels []LabelAnnotation, logos []LogoAnnotation, landmarks []LandmarkAnnotation, maxLabels int) AnnotationResult {
	if maxLabels > 0 && len(labels) > maxLabels {
		labels = labels[:maxLabels]
	}
	out := AnnotationResult{
		Labels:    make([]LabelAnnotation, 0, len(labels)),
		Logos:     make([]LogoAnnotation, 0, len(logos)),
		Landmarks: landmarks,
	}
	for _, l := range labels {
		l.Confidence = ClampConfidence(l.Confidence)
		out.Labels = append(out.Labels, l)
	}
	for _, l := range logos {
		l.Confidence = ClampConfidence(l.Confidence)
		out.Logos = append(out.Logos, l)
	}
	return out
}

// Logo は最初のロゴ候補を返します（先勝ち）。
func (r AnnotationResult) Logo() (LogoAnnotation, bool) {
	if len(r.Logos) == 0 {
		return LogoAnnotation{}, false
	}
	return r.Logos[0], true
}

// Landmark は最初のランドマーク候補を返します（先勝ち）。
func (r AnnotationResult) Landmark() (LandmarkAnnotation, bool) {
	if len(r.Landmarks) == 0 {
		return LandmarkAnnotation{}, false
	}
	return r.Landmarks[0], true
}

// ClampConfidence は信頼度を[0,1]に丸めます。NaNは0として扱います。
func ClampConfidence(v float32) float32 {
	f := float64(v)
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return v
}
