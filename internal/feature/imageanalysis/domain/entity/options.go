package entity

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	DefaultMaxLabels    = 5
	DefaultMaxLogos     = 5
	DefaultMaxLandmarks = 1
	DefaultImageQuality = 75
	// DefaultMaxSentences は百科事典要約の既定文数です。
	DefaultMaxSentences = 4
	// MaxResultsLimit は検出種別ごとに要求できる件数の上限です。
	MaxResultsLimit = 100
)

// DefaultLocale はエンリッチメントの既定言語です。
var DefaultLocale = language.English

// AnalyzeOptions は1回の解析リクエストの設定です。
type AnalyzeOptions struct {
	DetectLabels          bool
	DetectLogos           bool
	DetectLandmarks       bool
	MaxLabels             int
	MaxLogos              int
	MaxLandmarks          int
	ImageQuality          int // 0 ~ 100
	EnrichLandmarkAddress bool
	Locale                language.Tag
	MaxSentences          int
}

// DefaultAnalyzeOptions はすべての検出を有効にした既定のオプションを返します。
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		DetectLabels:          true,
		DetectLogos:           true,
		DetectLandmarks:       true,
		MaxLabels:             DefaultMaxLabels,
		MaxLogos:              DefaultMaxLogos,
		MaxLandmarks:          DefaultMaxLandmarks,
		ImageQuality:          DefaultImageQuality,
		EnrichLandmarkAddress: true,
		Locale:                DefaultLocale,
		MaxSentences:          DefaultMaxSentences,
	}
}

// Validate はオプションの値域を検証します。
func (o AnalyzeOptions) Validate() error {
	if o.MaxLabels < 0 || o.MaxLogos < 0 || o.MaxLandmarks < 0 {
		return fmt.Errorf("max results must not be negative")
	}
	if o.MaxLabels > MaxResultsLimit || o.MaxLogos > MaxResultsLimit || o.MaxLandmarks > MaxResultsLimit {
		return fmt.Errorf("max results must be at most %d", MaxResultsLimit)
	}
	if o.ImageQuality < 0 || o.ImageQuality > 100 {
		return fmt.Errorf("image quality must be between 0 and 100, got %d", o.ImageQuality)
	}
	if o.MaxSentences < 0 {
		return fmt.Errorf("max sentences must not be negative, got %d", o.MaxSentences)
	}
	return nil
}

// AnyDetection は少なくとも1つの検出が有効かを返します。
func (o AnalyzeOptions) AnyDetection() bool {
	return o.DetectLabels || o.DetectLogos || o.DetectLandmarks
}

// AnnotateOptions はAnnotationClientに渡す検出設定です。
type AnnotateOptions struct {
	DetectLabels    bool
	DetectLogos     bool
	DetectLandmarks bool
	MaxLabels       int
	MaxLogos        int
	MaxLandmarks    int
}

// AnnotateOptions は解析オプションから検出設定を取り出します。
func (o AnalyzeOptions) AnnotateOptions() AnnotateOptions {
	return AnnotateOptions{
		DetectLabels:    o.DetectLabels,
		DetectLogos:     o.DetectLogos,
		DetectLandmarks: o.DetectLandmarks,
		MaxLabels:       o.MaxLabels,
		MaxLogos:        o.MaxLogos,
		MaxLandmarks:    o.MaxLandmarks,
	}
}
