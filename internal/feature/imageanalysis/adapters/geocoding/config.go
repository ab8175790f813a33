// Package geocoding はGoogle Geocoding APIを使用した逆ジオコーディングクライアントを提供します。
package geocoding

import "time"

// DefaultEndpoint はGeocoding APIのエンドポイントです。
const DefaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// Config はGeocodingクライアントの設定です。
type Config struct {
	Endpoint string
	APIKey   string // 空の場合はkeyパラメータを付与しない
	Timeout  time.Duration
}

// DefaultConfig は既定の設定を返します。
func DefaultConfig() Config {
	return Config{Endpoint: DefaultEndpoint, Timeout: 10 * time.Second}
}
