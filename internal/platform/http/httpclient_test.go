package http

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		opts              []Option
		wantNoCompression bool
		wantIdlePerHost   int
	}{
		{name: "defaults"},
		{name: "without compression", opts: []Option{WithoutCompression()}, wantNoCompression: true},
		{name: "idle per host", opts: []Option{WithMaxIdleConnsPerHost(10)}, wantIdlePerHost: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewHTTPClient(10*time.Second, tt.opts...)
			if c.Timeout != 10*time.Second {
				t.Errorf("expected timeout 10s, got %v", c.Timeout)
			}
			tr, ok := c.Transport.(*http.Transport)
			if !ok {
				t.Fatalf("expected *http.Transport, got %T", c.Transport)
			}
			if tr.DisableCompression != tt.wantNoCompression {
				t.Errorf("expected DisableCompression %v, got %v", tt.wantNoCompression, tr.DisableCompression)
			}
			if tr.MaxIdleConnsPerHost != tt.wantIdlePerHost {
				t.Errorf("expected MaxIdleConnsPerHost %d, got %d", tt.wantIdlePerHost, tr.MaxIdleConnsPerHost)
			}
			if tr.MaxIdleConns != 100 {
				t.Errorf("expected MaxIdleConns 100, got %d", tr.MaxIdleConns)
			}
			if tr.TLSHandshakeTimeout != 5*time.Second {
				t.Errorf("expected TLSHandshakeTimeout 5s, got %v", tr.TLSHandshakeTimeout)
			}
		})
	}
}
