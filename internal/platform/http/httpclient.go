// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// Option はTransportの設定を変更します。
type Option func(*http.Transport)

// WithoutCompression はgzipの自動ネゴシエーションを無効にします。
// Vision APIへの画像アップロードではリクエスト・レスポンスとも非圧縮で送受信します。
func WithoutCompression() Option {
	return func(t *http.Transport) {
		t.DisableCompression = true
	}
}

// WithMaxIdleConnsPerHost はホストごとのアイドル接続数を設定します。
func WithMaxIdleConnsPerHost(n int) Option {
	return func(t *http.Transport) {
		t.MaxIdleConnsPerHost = n
	}
}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns: 最大アイドル接続数（高負荷時の枯渇防止のため100）
//   - IdleConnTimeout: アイドル接続の維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
func NewHTTPClient(timeout time.Duration, opts ...Option) *http.Client {
	return &http.Client{Timeout: timeout, Transport: NewTransport(opts...)}
}

// NewTransport はNewHTTPClientと同じ設定のTransportを返します。
// 認証用のRoundTripperでラップする場合に使用します。
func NewTransport(opts ...Option) *http.Transport {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
