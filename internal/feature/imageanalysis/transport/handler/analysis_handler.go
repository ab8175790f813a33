// Package handler はimageanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/transport/http/dto"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

// AnalysisUsecase は画像解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) <-chan entity.AnalysisDone
	Submit(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error)
	Result(ctx context.Context, id string) (*entity.AnalysisRecord, error)
}

// AnalysisHandler は画像解析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Create は画像をアップロードして解析を開始します。
//
// エンドポイント: POST /v1/analyses[?wait=true]
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）と解析オプション
func (h *AnalysisHandler) Create(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("解析リクエストのバインドに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "解析オプションが不正です"})
		return
	}

	opts, err := buildOptions(req, c.GetHeader("Accept-Language"))
	if err != nil {
		slog.Warn("解析オプションが不正", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "解析オプションが不正です"})
		return
	}

	imageData, status, msg := readImage(c)
	if status != 0 {
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	wait, _ := strconv.ParseBool(c.Query("wait"))
	if wait {
		h.analyzeAndWait(c, imageData, opts)
		return
	}

	id, err := h.uc.Submit(c.Request.Context(), imageData, opts)
	if err != nil {
		if isBadRequest(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("解析の受付に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "解析の受付に失敗しました"})
		return
	}

	slog.Info("analysis submitted", "analysis_id", id, "locale", opts.Locale.String())
	c.Header("Location", "/v1/analyses/"+id)
	c.JSON(http.StatusAccepted, dto.SubmitResponse{ID: id, Status: string(entity.RecordPending)})
}

func (h *AnalysisHandler) analyzeAndWait(c *gin.Context, imageData []byte, opts entity.AnalyzeOptions) {
	select {
	case done := <-h.uc.Analyze(c.Request.Context(), imageData, opts):
		if isBadRequest(done.Err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: done.Err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewAnalysisResponse(done))
	case <-c.Request.Context().Done():
		slog.Warn("client went away before analysis finished", "error", c.Request.Context().Err())
	}
}

// Get は解析IDに対応する結果を返します。
//
// エンドポイント: GET /v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.uc.Result(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "解析結果が見つかりません"})
			return
		}
		slog.Error("解析結果の取得に失敗", "analysis_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "解析結果の取得に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisRecordResponse(*rec))
}

// readImage はマルチパートの image フィールドを読み込みます。
// 失敗した場合は0以外のHTTPステータスとメッセージを返します。
func readImage(c *gin.Context) ([]byte, int, string) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		return nil, http.StatusBadRequest, "画像ファイルが必要です"
	}
	if file.Size > usecase.MaxImageSize {
		return nil, http.StatusRequestEntityTooLarge, "画像サイズが上限を超えています"
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		return nil, http.StatusInternalServerError, "画像の読み込みに失敗しました"
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		return nil, http.StatusInternalServerError, "画像の読み込みに失敗しました"
	}
	return imageData, 0, ""
}

// buildOptions はフォーム値を既定値に重ねて解析オプションを組み立てます。
// locale が未指定の場合は Accept-Language の先頭の言語を使います。
func buildOptions(req dto.AnalyzeRequest, acceptLanguage string) (entity.AnalyzeOptions, error) {
	opts := entity.DefaultAnalyzeOptions()
	setBool(&opts.DetectLabels, req.DetectLabels)
	setBool(&opts.DetectLogos, req.DetectLogos)
	setBool(&opts.DetectLandmarks, req.DetectLandmarks)
	setBool(&opts.EnrichLandmarkAddress, req.EnrichLandmarkAddress)
	setInt(&opts.MaxLabels, req.MaxLabels)
	setInt(&opts.MaxLogos, req.MaxLogos)
	setInt(&opts.MaxLandmarks, req.MaxLandmarks)
	setInt(&opts.ImageQuality, req.ImageQuality)
	setInt(&opts.MaxSentences, req.MaxSentences)

	switch {
	case req.Locale != "":
		tag, err := language.Parse(req.Locale)
		if err != nil {
			return opts, err
		}
		opts.Locale = tag
	case acceptLanguage != "":
		// 不正なヘッダーは無視して既定のロケールを使う
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 && tags[0] != language.Und {
			opts.Locale = tags[0]
		}
	}

	return opts, opts.Validate()
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func isBadRequest(err error) bool {
	return errors.Is(err, domain.ErrInvalidOptions) || errors.Is(err, domain.ErrImageUnavailable)
}
