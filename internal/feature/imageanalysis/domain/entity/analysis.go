package entity

import "time"

// AnalysisState は1回の解析の進行状態です。
type AnalysisState int

const (
	StateAnnotated AnalysisState = iota
	StateEnriching
	StateEnriched
)

func (s AnalysisState) String() string {
	switch s {
	case StateAnnotated:
		return "annotated"
	case StateEnriching:
		return "enriching"
	case StateEnriched:
		return "enriched"
	}
	return "unknown"
}

// AnalysisDone は解析完了イベントです。Errが非nilの場合、ファクトは空です。
type AnalysisDone struct {
	Labels   []LabelFact
	Logo     *LogoFact
	Landmark *LandmarkFact
	Err      error
}

// FailedAnalysis はエラーのみを持つ完了イベントを返します。
func FailedAnalysis(err error) AnalysisDone {
	return AnalysisDone{Labels: []LabelFact{}, Err: err}
}

// RecordStatus はハンドオフレコードの状態です。
type RecordStatus string

const (
	RecordPending RecordStatus = "pending"
	RecordDone    RecordStatus = "done"
)

// AnalysisRecord は非同期解析の結果を呼び出し元へ受け渡すための短命なレコードです。
type AnalysisRecord struct {
	ID        string
	Status    RecordStatus
	Result    *AnalysisDone
	CreatedAt time.Time
}
