// Package domain はimageanalysisフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrImageUnavailable は画像データが空・読み取り不能・サイズ超過の場合に返されます。
	ErrImageUnavailable = errors.New("image unavailable")
	// ErrRemoteService はリモートサービスが非成功ステータスを返した場合に返されます。
	ErrRemoteService = errors.New("remote service error")
	// ErrTransport はネットワーク・タイムアウト・I/O障害の場合に返されます。
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse はレスポンスが期待する形式でない場合に返されます。
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidOptions は解析オプションが不正な場合に返されます。
	ErrInvalidOptions = errors.New("invalid analyze options")
	// ErrAnalysisNotFound は解析IDに対応する結果が存在しない（または期限切れ）場合に返されます。
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// エラー種別の安定した文字列表現です。
const (
	KindImageUnavailable  = "image_unavailable"
	KindRemoteService     = "remote_service_error"
	KindTransport         = "transport_error"
	KindMalformedResponse = "malformed_response"
	KindUnknown           = "unknown_error"
)

var kinds = []struct {
	kind string
	err  error
}{
	{KindImageUnavailable, ErrImageUnavailable},
	{KindRemoteService, ErrRemoteService},
	{KindTransport, ErrTransport},
	{KindMalformedResponse, ErrMalformedResponse},
}

// ErrorKind はエラーを安定した種別文字列に変換します。errがnilの場合は空文字を返します。
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// ErrorFromKind は種別文字列とメッセージからエラーを復元します。
// 復元されたエラーは errors.Is で元のセンチネルと一致します。
func ErrorFromKind(kind, message string) error {
	if kind == "" {
		return nil
	}
	for _, k := range kinds {
		if k.kind == kind {
			if message == "" || message == k.err.Error() {
				return k.err
			}
			return &kindError{sentinel: k.err, message: message}
		}
	}
	return errors.New(message)
}

type kindError struct {
	sentinel error
	message  string
}

func (e *kindError) Error() string { return e.message }

func (e *kindError) Unwrap() error { return e.sentinel }
