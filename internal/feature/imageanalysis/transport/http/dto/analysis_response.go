package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalysisResponse は1回の解析結果です。解析に失敗した場合はErrorのみを持ちます。
type AnalysisResponse struct {
	Labels   []LabelResponse   `json:"labels"`
	Logo     *LogoResponse     `json:"logo"`
	Landmark *LandmarkResponse `json:"landmark"`
	Error    *ErrorDetail      `json:"error,omitempty"`
}

type LabelResponse struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

type LogoResponse struct {
	BrandName    string             `json:"brand_name"`
	Description  null.String        `json:"description"`
	SummaryURL   null.String        `json:"summary_url"`
	LogoImageURL null.String        `json:"logo_image_url"`
	Properties   []PropertyResponse `json:"properties"`
}

type PropertyResponse struct {
	Kind      string      `json:"kind"`
	Value     string      `json:"value"`
	ActionURL null.String `json:"action_url"`
}

type LandmarkResponse struct {
	Name        string      `json:"name"`
	Address     null.String `json:"address"`
	Description null.String `json:"description"`
	SummaryURL  null.String `json:"summary_url"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
}

// ErrorDetail は解析失敗の種別とメッセージです。
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SubmitResponse は非同期解析の受付レスポンスです。
type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AnalysisRecordResponse は GET /v1/analyses/:id のレスポンスです。
type AnalysisRecordResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Result    *AnalysisResponse `json:"result,omitempty"`
}

// NewAnalysisResponse は完了イベントをレスポンスに変換します。
func NewAnalysisResponse(done entity.AnalysisDone) AnalysisResponse {
	out := AnalysisResponse{Labels: make([]LabelResponse, 0, len(done.Labels))}
	if done.Err != nil {
		out.Error = &ErrorDetail{Kind: domain.ErrorKind(done.Err), Message: done.Err.Error()}
		return out
	}

	for _, l := range done.Labels {
		out.Labels = append(out.Labels, LabelResponse{Name: l.Name, Confidence: l.Confidence})
	}
	if lg := done.Logo; lg != nil {
		props := make([]PropertyResponse, 0, len(lg.Properties))
		for _, p := range lg.Properties {
			props = append(props, PropertyResponse{Kind: p.Kind.String(), Value: p.Value, ActionURL: p.ActionURL})
		}
		out.Logo = &LogoResponse{
			BrandName:    lg.BrandName,
			Description:  lg.Description,
			SummaryURL:   lg.SummaryURL,
			LogoImageURL: lg.LogoImageURL,
			Properties:   props,
		}
	}
	if lm := done.Landmark; lm != nil {
		out.Landmark = &LandmarkResponse{
			Name:        lm.Name,
			Address:     lm.Address,
			Description: lm.Description,
			SummaryURL:  lm.SummaryURL,
			Latitude:    lm.Latitude,
			Longitude:   lm.Longitude,
		}
	}
	return out
}

// NewAnalysisRecordResponse はハンドオフレコードをレスポンスに変換します。
func NewAnalysisRecordResponse(rec entity.AnalysisRecord) AnalysisRecordResponse {
	out := AnalysisRecordResponse{
		ID:        rec.ID,
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
	if rec.Result != nil {
		res := NewAnalysisResponse(*rec.Result)
		out.Result = &res
	}
	return out
}
