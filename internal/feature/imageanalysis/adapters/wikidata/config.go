// Package wikidata はWikidataのSPARQLエンドポイントを使用したブランド情報クライアントを提供します。
package wikidata

import "time"

const (
	// DefaultEndpoint はWikidata Query ServiceのSPARQLエンドポイントです。
	DefaultEndpoint = "https://query.wikidata.org/sparql"
	// DefaultUserAgent はWikimediaのUser-Agentポリシーに従った識別子です。
	DefaultUserAgent = "cloudvision-backend/1.0 (image enrichment)"
)

// Config はWikidataクライアントの設定です。
type Config struct {
	Endpoint          string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0以下で無制限
	Burst             int
}

// DefaultConfig は既定の設定を返します。
func DefaultConfig() Config {
	return Config{
		Endpoint:          DefaultEndpoint,
		UserAgent:         DefaultUserAgent,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             2,
	}
}
