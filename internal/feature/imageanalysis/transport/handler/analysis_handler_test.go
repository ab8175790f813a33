package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/transport/handler"
)

// mockAnalysisUsecase はAnalysisUsecaseインターフェースのモック実装です。
type mockAnalysisUsecase struct {
	AnalyzeFunc func(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) entity.AnalysisDone
	SubmitFunc  func(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error)
	ResultFunc  func(ctx context.Context, id string) (*entity.AnalysisRecord, error)
}

func (m *mockAnalysisUsecase) Analyze(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) <-chan entity.AnalysisDone {
	out := make(chan entity.AnalysisDone, 1)
	out <- m.AnalyzeFunc(ctx, imageData, opts)
	close(out)
	return out
}

func (m *mockAnalysisUsecase) Submit(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error) {
	return m.SubmitFunc(ctx, imageData, opts)
}

func (m *mockAnalysisUsecase) Result(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	return m.ResultFunc(ctx, id)
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, target string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if content != nil {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
			t.Fatalf("failed to copy content: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, target, body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newRouter(uc handler.AnalysisUsecase) *gin.Engine {
	h := handler.NewAnalysisHandler(uc)
	r := gin.New()
	r.POST("/v1/analyses", h.Create)
	r.GET("/v1/analyses/:id", h.Get)
	return r
}

func eiffelDone() entity.AnalysisDone {
	return entity.AnalysisDone{
		Labels: []entity.LabelFact{{Name: "Tower", Confidence: 0.5}},
		Landmark: &entity.LandmarkFact{
			Name:        "Eiffel Tower",
			Address:     null.StringFrom("Champ de Mars, 75007 Paris, France"),
			Description: null.StringFrom("The Eiffel Tower is a wrought-iron lattice tower."),
			SummaryURL:  null.StringFrom("https://en.wikipedia.org/wiki/Eiffel_Tower"),
			Latitude:    48.8584,
			Longitude:   2.2945,
		},
		Logo: &entity.LogoFact{
			BrandName: "Google",
			Properties: []entity.Property{
				{Kind: entity.PropertyTwitter, Value: "Google", ActionURL: null.StringFrom("https://twitter.com/Google")},
			},
		},
	}
}

func TestAnalysisHandler_Create_Wait(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		fields         map[string]string
		done           entity.AnalysisDone
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: facts returned",
			done:           eiffelDone(),
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"labels":[{"name":"Tower","confidence":0.5}],
				"logo":{"brand_name":"Google","description":null,"summary_url":null,"logo_image_url":null,
					"properties":[{"kind":"TWITTER","value":"Google","action_url":"https://twitter.com/Google"}]},
				"landmark":{"name":"Eiffel Tower","address":"Champ de Mars, 75007 Paris, France",
					"description":"The Eiffel Tower is a wrought-iron lattice tower.",
					"summary_url":"https://en.wikipedia.org/wiki/Eiffel_Tower","latitude":48.8584,"longitude":2.2945}
			}`,
		},
		{
			name:           "annotation failure is reported in payload",
			done:           entity.FailedAnalysis(fmt.Errorf("%w: vision returned 403", domain.ErrRemoteService)),
			expectedStatus: http.StatusOK,
			expectedBody: `{"labels":[],"logo":null,"landmark":null,
				"error":{"kind":"remote_service_error","message":"remote service error: vision returned 403"}}`,
		},
		{
			name:           "empty result when every detection is disabled",
			fields:         map[string]string{"detect_labels": "false", "detect_logos": "false", "detect_landmarks": "false"},
			done:           entity.AnalysisDone{Labels: []entity.LabelFact{}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"labels":[],"logo":null,"landmark":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAnalysisUsecase{
				AnalyzeFunc: func(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) entity.AnalysisDone {
					assert.Equal(t, []byte("fake-image"), imageData)
					return tt.done
				},
			}

			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, createMultipartRequest(t, "/v1/analyses?wait=true", []byte("fake-image"), tt.fields))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAnalysisHandler_Create_Options(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		fields         map[string]string
		acceptLanguage string
		check          func(t *testing.T, opts entity.AnalyzeOptions)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, opts entity.AnalyzeOptions) {
				assert.Equal(t, entity.DefaultAnalyzeOptions(), opts)
			},
		},
		{
			name:           "locale from Accept-Language",
			acceptLanguage: "pt-BR,pt;q=0.9,en;q=0.5",
			check: func(t *testing.T, opts entity.AnalyzeOptions) {
				assert.Equal(t, "pt-BR", opts.Locale.String())
			},
		},
		{
			name:           "form locale wins over header",
			fields:         map[string]string{"locale": "de"},
			acceptLanguage: "fr",
			check: func(t *testing.T, opts entity.AnalyzeOptions) {
				assert.Equal(t, "de", opts.Locale.String())
			},
		},
		{
			name:           "broken header falls back to default locale",
			acceptLanguage: "!!!",
			check: func(t *testing.T, opts entity.AnalyzeOptions) {
				assert.Equal(t, entity.DefaultLocale, opts.Locale)
			},
		},
		{
			name: "explicit values",
			fields: map[string]string{
				"detect_logos":            "false",
				"max_labels":              "10",
				"image_quality":           "90",
				"enrich_landmark_address": "false",
				"max_sentences":           "2",
			},
			check: func(t *testing.T, opts entity.AnalyzeOptions) {
				assert.True(t, opts.DetectLabels)
				assert.False(t, opts.DetectLogos)
				assert.Equal(t, 10, opts.MaxLabels)
				assert.Equal(t, 90, opts.ImageQuality)
				assert.False(t, opts.EnrichLandmarkAddress)
				assert.Equal(t, 2, opts.MaxSentences)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got entity.AnalyzeOptions
			uc := &mockAnalysisUsecase{
				SubmitFunc: func(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error) {
					got = opts
					return "3f0c", nil
				},
			}

			req := createMultipartRequest(t, "/v1/analyses", []byte("fake-image"), tt.fields)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, req)

			require.Equal(t, http.StatusAccepted, w.Code)
			assert.JSONEq(t, `{"id":"3f0c","status":"pending"}`, w.Body.String())
			assert.Equal(t, "/v1/analyses/3f0c", w.Header().Get("Location"))
			tt.check(t, got)
		})
	}
}

func TestAnalysisHandler_Create_BadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		content        []byte
		fields         map[string]string
		submitErr      error
		expectedStatus int
	}{
		{name: "no image field", content: nil, expectedStatus: http.StatusBadRequest},
		{name: "image quality out of range", content: []byte("img"), fields: map[string]string{"image_quality": "150"}, expectedStatus: http.StatusBadRequest},
		{name: "negative max labels", content: []byte("img"), fields: map[string]string{"max_labels": "-1"}, expectedStatus: http.StatusBadRequest},
		{name: "max logos overflows int32", content: []byte("img"), fields: map[string]string{"max_logos": "2147483648"}, expectedStatus: http.StatusBadRequest},
		{name: "max labels over limit", content: []byte("img"), fields: map[string]string{"max_labels": "101"}, expectedStatus: http.StatusBadRequest},
		{name: "non numeric field", content: []byte("img"), fields: map[string]string{"max_logos": "many"}, expectedStatus: http.StatusBadRequest},
		{name: "malformed locale", content: []byte("img"), fields: map[string]string{"locale": "not a locale"}, expectedStatus: http.StatusBadRequest},
		{name: "usecase rejects image", content: []byte("img"), submitErr: fmt.Errorf("%w: image data is empty", domain.ErrImageUnavailable), expectedStatus: http.StatusBadRequest},
		{name: "store failure", content: []byte("img"), submitErr: errors.New("redis down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAnalysisUsecase{
				SubmitFunc: func(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error) {
					if tt.submitErr == nil {
						t.Fatal("Submit should not be called")
					}
					return "", tt.submitErr
				},
			}

			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, createMultipartRequest(t, "/v1/analyses", tt.content, tt.fields))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestAnalysisHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	done := entity.AnalysisDone{Labels: []entity.LabelFact{{Name: "Tower", Confidence: 0.5}}}

	tests := []struct {
		name           string
		rec            *entity.AnalysisRecord
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "pending",
			rec:            &entity.AnalysisRecord{ID: "3f0c", Status: entity.RecordPending, CreatedAt: created},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"3f0c","status":"pending","created_at":"2026-01-02T03:04:05Z"}`,
		},
		{
			name:           "done",
			rec:            &entity.AnalysisRecord{ID: "3f0c", Status: entity.RecordDone, CreatedAt: created, Result: &done},
			expectedStatus: http.StatusOK,
			expectedBody: `{"id":"3f0c","status":"done","created_at":"2026-01-02T03:04:05Z",
				"result":{"labels":[{"name":"Tower","confidence":0.5}],"logo":null,"landmark":null}}`,
		},
		{
			name:           "unknown or expired",
			err:            domain.ErrAnalysisNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"解析結果が見つかりません"}`,
		},
		{
			name:           "store failure",
			err:            errors.New("redis down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"解析結果の取得に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAnalysisUsecase{
				ResultFunc: func(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
					assert.Equal(t, "3f0c", id)
					return tt.rec, tt.err
				},
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/analyses/3f0c", nil)
			newRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
