// Package vision はGoogle Cloud Vision APIを使用した画像アノテーションクライアントを提供します。
package vision

import "time"

// cloudVisionScope はADC使用時に要求するOAuthスコープです。
const cloudVisionScope = "https://www.googleapis.com/auth/cloud-vision"

// Config はVision APIクライアントの設定です。
type Config struct {
	APIKey   string        // 空の場合はADCで認証する
	Endpoint string        // 空の場合は既定のエンドポイント
	Timeout  time.Duration // 画像アップロードを含むリクエスト全体のタイムアウト
}

// DefaultConfig は既定の設定を返します。
// 画像アップロードを伴うため、他の外部APIより長いタイムアウトを使います。
func DefaultConfig() Config {
	return Config{Timeout: 60 * time.Second}
}
