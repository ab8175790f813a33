// Package wikipedia はWikipedia APIを使用した記事要約クライアントを提供します。
package wikipedia

import "time"

const (
	// DefaultAPIURLTemplate は言語コードを埋め込むAPIエンドポイントのテンプレートです。
	DefaultAPIURLTemplate = "https://%s.wikipedia.org/w/api.php"
	// DefaultWikiURLTemplate は言語コードと記事名を埋め込む記事URLのテンプレートです。
	DefaultWikiURLTemplate = "https://%s.wikipedia.org/wiki/%s"
	// DefaultUserAgent はWikimediaのUser-Agentポリシーに従った識別子です。
	DefaultUserAgent = "cloudvision-backend/1.0 (image enrichment)"
)

// Config はWikipediaクライアントの設定です。
type Config struct {
	APIURLTemplate    string        // 言語コードを1つ埋め込むAPI URL
	WikiURLTemplate   string        // 言語コードと記事名を埋め込む記事URL
	UserAgent         string        // リクエストに付与するUser-Agent
	Timeout           time.Duration // HTTPリクエストタイムアウト
	RequestsPerSecond float64       // 0以下で無制限
	Burst             int
}

// DefaultConfig は既定の設定を返します。
func DefaultConfig() Config {
	return Config{
		APIURLTemplate:    DefaultAPIURLTemplate,
		WikiURLTemplate:   DefaultWikiURLTemplate,
		UserAgent:         DefaultUserAgent,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}
