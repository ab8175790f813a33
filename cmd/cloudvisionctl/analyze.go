package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/app/config"
	"cloudvision_backend/internal/app/di"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/transport/http/dto"
)

// newAnalyzeCmd は画像ファイルを1枚解析して結果をJSONで出力するコマンドです。
// Redisは使わず、キャッシュなしで実行します。
func newAnalyzeCmd() *cobra.Command {
	opts := entity.DefaultAnalyzeOptions()
	var locale string

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a local image and print the enriched facts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(locale)
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", locale, err)
			}
			opts.Locale = tag
			if err := opts.Validate(); err != nil {
				return err
			}

			imageData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			analysis, err := di.NewImageAnalysis(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer func() { _ = analysis.Close() }()

			done := <-analysis.Usecase.Analyze(cmd.Context(), imageData, opts)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(dto.NewAnalysisResponse(done)); err != nil {
				return err
			}
			return done.Err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.DetectLabels, "labels", opts.DetectLabels, "detect labels")
	f.BoolVar(&opts.DetectLogos, "logos", opts.DetectLogos, "detect logos")
	f.BoolVar(&opts.DetectLandmarks, "landmarks", opts.DetectLandmarks, "detect landmarks")
	f.IntVar(&opts.MaxLabels, "max-labels", opts.MaxLabels, "maximum number of labels")
	f.IntVar(&opts.MaxLogos, "max-logos", opts.MaxLogos, "maximum number of logo candidates")
	f.IntVar(&opts.MaxLandmarks, "max-landmarks", opts.MaxLandmarks, "maximum number of landmark candidates")
	f.IntVar(&opts.ImageQuality, "image-quality", opts.ImageQuality, "image quality (0-100)")
	f.BoolVar(&opts.EnrichLandmarkAddress, "address", opts.EnrichLandmarkAddress, "reverse geocode the landmark")
	f.IntVar(&opts.MaxSentences, "max-sentences", opts.MaxSentences, "sentences per encyclopedia summary")
	f.StringVar(&locale, "locale", entity.DefaultLocale.String(), "BCP 47 locale for descriptions")
	return cmd
}
