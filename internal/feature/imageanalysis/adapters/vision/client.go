package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
	platformhttp "cloudvision_backend/internal/platform/http"
)

// VisionAnnotator はGoogle Cloud Vision APIで画像のラベル・ロゴ・ランドマークを検出します。
type VisionAnnotator struct {
	client *gvision.ImageAnnotatorClient
}

// VisionAnnotatorがAnnotatorを実装していることをコンパイル時に検証します。
var _ usecase.Annotator = (*VisionAnnotator)(nil)

// NewHTTPClient はVision API用の認証済みHTTPクライアントを生成します。
// APIキーが設定されていればキー認証、なければADCを使用します。gzip圧縮は無効です。
func NewHTTPClient(ctx context.Context, cfg Config) (*http.Client, error) {
	auth := option.WithScopes(cloudVisionScope)
	if cfg.APIKey != "" {
		auth = option.WithAPIKey(cfg.APIKey)
	}
	rt, err := htransport.NewTransport(ctx, platformhttp.NewTransport(platformhttp.WithoutCompression()), auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision transport: %w", err)
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: rt}, nil
}

// NewVisionAnnotator はREST transportを使用するVisionAnnotatorの新しいインスタンスを生成します。
func NewVisionAnnotator(ctx context.Context, cfg Config, hc *http.Client) (*VisionAnnotator, error) {
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := gvision.NewImageAnnotatorRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionAnnotator{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionAnnotator) Close() error {
	return v.client.Close()
}

// Annotate は画像バイト列を送信し、有効な検出の結果を返します。
// ラベルはレスポンス順にMaxLabels件まで、ロゴとランドマークは最初の1件のみ保持します。
// 失敗時はリトライせず、ErrImageUnavailable・ErrRemoteService・ErrTransport・ErrMalformedResponseのいずれかを返します。
func (v *VisionAnnotator) Annotate(ctx context.Context, imageData []byte, opts entity.AnnotateOptions) (*entity.AnnotationResult, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: image data is empty", domain.ErrImageUnavailable)
	}

	features := buildFeatures(opts)
	if len(features) == 0 {
		res := entity.NewAnnotationResult(nil, nil, nil, 0)
		return &res, nil
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: imageData},
				Features: features,
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req, gax.WithRetry(func() gax.Retryer { return nil }))
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("%w: vision response has no results", domain.ErrMalformedResponse)
	}
	r := resp.GetResponses()[0]
	if st := r.GetError(); st != nil && st.GetCode() != 0 {
		return nil, fmt.Errorf("%w: vision status %d: %s", domain.ErrRemoteService, st.GetCode(), st.GetMessage())
	}

	labels := make([]entity.LabelAnnotation, 0, len(r.GetLabelAnnotations()))
	for _, a := range r.GetLabelAnnotations() {
		labels = append(labels, entity.LabelAnnotation{
			Description: a.GetDescription(),
			Confidence:  a.GetScore(),
		})
	}

	var logos []entity.LogoAnnotation
	if a := r.GetLogoAnnotations(); len(a) > 0 {
		logos = append(logos, entity.LogoAnnotation{
			Description: a[0].GetDescription(),
			Confidence:  a[0].GetScore(),
		})
	}

	var landmarks []entity.LandmarkAnnotation
	if a := r.GetLandmarkAnnotations(); len(a) > 0 {
		lm := entity.LandmarkAnnotation{Description: a[0].GetDescription()}
		for _, loc := range a[0].GetLocations() {
			if ll := loc.GetLatLng(); ll != nil {
				lm.Locations = append(lm.Locations, entity.LatLng{
					Latitude:  ll.GetLatitude(),
					Longitude: ll.GetLongitude(),
				})
			}
		}
		landmarks = append(landmarks, lm)
	}

	res := entity.NewAnnotationResult(labels, logos, landmarks, opts.MaxLabels)
	return &res, nil
}

func buildFeatures(opts entity.AnnotateOptions) []*visionpb.Feature {
	var features []*visionpb.Feature
	if opts.DetectLabels {
		features = append(features, &visionpb.Feature{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: int32(opts.MaxLabels)})
	}
	if opts.DetectLogos {
		features = append(features, &visionpb.Feature{Type: visionpb.Feature_LOGO_DETECTION, MaxResults: int32(opts.MaxLogos)})
	}
	if opts.DetectLandmarks {
		features = append(features, &visionpb.Feature{Type: visionpb.Feature_LANDMARK_DETECTION, MaxResults: int32(opts.MaxLandmarks)})
	}
	return features
}

// classifyError はクライアントエラーをドメインのエラー種別に変換します。
func classifyError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%w: vision http %d: %s", domain.ErrRemoteService, gerr.Code, gerr.Message)
	}
	if ae, ok := apierror.FromError(err); ok {
		if st := ae.GRPCStatus(); st != nil {
			return fmt.Errorf("%w: vision %s: %s", domain.ErrRemoteService, st.Code(), st.Message())
		}
		return fmt.Errorf("%w: vision http %d: %v", domain.ErrRemoteService, ae.HTTPCode(), ae)
	}
	return fmt.Errorf("%w: vision request: %v", domain.ErrTransport, err)
}
