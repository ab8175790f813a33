// Package handoff は非同期解析の結果を呼び出し元へ受け渡すResultStore実装を提供します。
package handoff

import (
	"time"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

// recordModel はAnalysisRecordの保存形式です。エラーは種別とメッセージに分解して保存します。
type recordModel struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Result    *resultModel `json:"result,omitempty"`
}

type resultModel struct {
	Labels       []entity.LabelFact   `json:"labels"`
	Logo         *entity.LogoFact     `json:"logo,omitempty"`
	Landmark     *entity.LandmarkFact `json:"landmark,omitempty"`
	ErrorKind    string               `json:"error_kind,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

func toModel(rec entity.AnalysisRecord) recordModel {
	m := recordModel{
		ID:        rec.ID,
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
	if rec.Result != nil {
		m.Result = &resultModel{
			Labels:    rec.Result.Labels,
			Logo:      rec.Result.Logo,
			Landmark:  rec.Result.Landmark,
			ErrorKind: domain.ErrorKind(rec.Result.Err),
		}
		if rec.Result.Err != nil {
			m.Result.ErrorMessage = rec.Result.Err.Error()
		}
	}
	return m
}

func (m recordModel) toEntity() *entity.AnalysisRecord {
	rec := &entity.AnalysisRecord{
		ID:        m.ID,
		Status:    entity.RecordStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
	if m.Result != nil {
		labels := m.Result.Labels
		if labels == nil {
			labels = []entity.LabelFact{}
		}
		rec.Result = &entity.AnalysisDone{
			Labels:   labels,
			Logo:     m.Result.Logo,
			Landmark: m.Result.Landmark,
			Err:      domain.ErrorFromKind(m.Result.ErrorKind, m.Result.ErrorMessage),
		}
	}
	return rec
}
