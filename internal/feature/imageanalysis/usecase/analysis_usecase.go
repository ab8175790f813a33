// Package usecase はimageanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// resultSaveTimeout は完了結果をストアへ書き込む際のタイムアウトです。
	resultSaveTimeout = 5 * time.Second
)

// Annotator は画像をVision APIに送りアノテーション結果を返すインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Annotator interface {
	Annotate(ctx context.Context, imageData []byte, opts entity.AnnotateOptions) (*entity.AnnotationResult, error)
}

// ResultStore は非同期解析の結果を一時的に保持するインターフェースです。
type ResultStore interface {
	Save(ctx context.Context, rec entity.AnalysisRecord) error
	// Find はレコードを返します。存在しない場合は domain.ErrAnalysisNotFound を返します。
	Find(ctx context.Context, id string) (*entity.AnalysisRecord, error)
}

// analysisUsecase は画像解析とエンリッチメントのビジネスロジックを提供します。
type analysisUsecase struct {
	annotator Annotator
	enricher  *Enricher
	store     ResultStore
	now       func() time.Time
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(a Annotator, e *Enricher, store ResultStore) *analysisUsecase {
	return &analysisUsecase{annotator: a, enricher: e, store: store, now: time.Now}
}

// Analyze は専用のgoroutineで解析を実行し、完了イベントを1件だけ受け取るチャネルを返します。
// 呼び出し元のコンテキストがキャンセルされても解析は継続します。
func (u *analysisUsecase) Analyze(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) <-chan entity.AnalysisDone {
	out := make(chan entity.AnalysisDone, 1)
	workerCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("analysis worker panicked", "panic", r)
				out <- entity.FailedAnalysis(fmt.Errorf("analysis worker panicked: %v", r))
			}
		}()
		out <- u.run(workerCtx, imageData, opts)
	}()

	return out
}

func (u *analysisUsecase) run(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) entity.AnalysisDone {
	if !opts.AnyDetection() {
		return entity.AnalysisDone{Labels: []entity.LabelFact{}}
	}
	opts = normalizeOptions(opts)
	if err := opts.Validate(); err != nil {
		return entity.FailedAnalysis(fmt.Errorf("%w: %v", domain.ErrInvalidOptions, err))
	}
	if err := validateImage(imageData); err != nil {
		return entity.FailedAnalysis(err)
	}

	res, err := u.annotator.Annotate(ctx, imageData, opts.AnnotateOptions())
	if err != nil {
		slog.Error("image annotation failed", "kind", domain.ErrorKind(err), "error", err)
		return entity.FailedAnalysis(err)
	}
	slog.Debug("analysis state changed", "state", entity.StateAnnotated,
		"labels", len(res.Labels), "logos", len(res.Logos), "landmarks", len(res.Landmarks))

	labels, logo, landmark := MapAnnotations(*res)
	return u.enricher.Enrich(ctx, labels, logo, landmark, opts)
}

// Submit は解析を開始し、結果を取得するためのIDを返します。
// 結果は完了時にResultStoreへ保存されます。
func (u *analysisUsecase) Submit(ctx context.Context, imageData []byte, opts entity.AnalyzeOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidOptions, err)
	}
	if err := validateImage(imageData); err != nil {
		return "", err
	}

	rec := entity.AnalysisRecord{
		ID:        uuid.NewString(),
		Status:    entity.RecordPending,
		CreatedAt: u.now(),
	}
	if err := u.store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save pending analysis %s: %w", rec.ID, err)
	}

	id := rec.ID
	done := u.Analyze(ctx, imageData, opts)
	go func() {
		result := <-done
		rec.Status = entity.RecordDone
		rec.Result = &result

		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultSaveTimeout)
		defer cancel()
		if err := u.store.Save(saveCtx, rec); err != nil {
			slog.Error("failed to save analysis result", "analysis_id", rec.ID, "error", err)
			return
		}
		slog.Info("analysis finished", "analysis_id", rec.ID, "error_kind", domain.ErrorKind(result.Err))
	}()

	return id, nil
}

// Result は解析IDに対応するレコードを返します。
func (u *analysisUsecase) Result(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	if id == "" {
		return nil, domain.ErrAnalysisNotFound
	}
	return u.store.Find(ctx, id)
}

func validateImage(imageData []byte) error {
	if len(imageData) == 0 {
		return fmt.Errorf("%w: image data is empty", domain.ErrImageUnavailable)
	}
	if len(imageData) > MaxImageSize {
		return fmt.Errorf("%w: image size exceeds maximum of %d bytes", domain.ErrImageUnavailable, MaxImageSize)
	}
	return nil
}

func normalizeOptions(opts entity.AnalyzeOptions) entity.AnalyzeOptions {
	if opts.Locale == language.Und {
		opts.Locale = entity.DefaultLocale
	}
	if opts.MaxSentences == 0 {
		opts.MaxSentences = entity.DefaultMaxSentences
	}
	return opts
}
