package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/guregu/null/v5"

	"cloudvision_backend/internal/feature/imageanalysis/adapters/geocoding/dto"
	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

// Google Geocoding APIのstatus値です。
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client はGoogle Geocoding APIで座標から住所を解決するGeocoder実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがGeocoderを実装していることをコンパイル時に検証します。
var _ usecase.Geocoder = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{cfg: cfg, client: client}
}

// ReverseGeocode は座標に対応する最初の整形済み住所を返します。
// HTTP 200以外の応答はエラーです。該当する住所がない場合は無効なnull値を返します。
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (null.String, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return null.String{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return null.String{}, fmt.Errorf("%w: geocoding request: %v", domain.ErrTransport, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return null.String{}, fmt.Errorf("%w: geocoding http %d", domain.ErrRemoteService, res.StatusCode)
	}

	var body dto.GeocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return null.String{}, fmt.Errorf("%w: decode geocoding response: %v", domain.ErrMalformedResponse, err)
	}

	switch body.Status {
	case statusOK, "":
	case statusZeroResults:
		return null.String{}, nil
	default:
		return null.String{}, fmt.Errorf("%w: geocoding status %s: %s", domain.ErrRemoteService, body.Status, body.ErrorMessage)
	}

	for _, r := range body.Results {
		if r.FormattedAddress != "" {
			return null.StringFrom(r.FormattedAddress), nil
		}
	}
	return null.String{}, nil
}
