package wikidata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
	"cloudvision_backend/internal/shared/ratelimiter"
)

// TitleResolver はブランド名を端末ロケールの記事名・言語に解決します。
type TitleResolver interface {
	ResolveQuery(ctx context.Context, name string, locale language.Tag) entity.EnrichmentQuery
}

// Client はWikidataからブランド情報を取得するBrandCatalog実装です。
type Client struct {
	cfg      Config
	client   *http.Client
	limiter  ratelimiter.Limiter
	resolver TitleResolver
}

// ClientがBrandCatalogを実装していることをコンパイル時に検証します。
var _ usecase.BrandCatalog = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。
// resolverがnilの場合、ブランド名とロケールをそのまま検索に使います。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter, resolver TitleResolver) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, resolver: resolver}
}

// FetchBrandProperties はブランドのロゴ画像URLとプロパティ一覧を返します。
// 該当するブランドがない場合は (nil, nil) を返します。同じ入力に対しては同じ結果を返します。
func (c *Client) FetchBrandProperties(ctx context.Context, brandName string, locale language.Tag) (*entity.BrandProfile, error) {
	info, err := c.FetchBrandInfo(ctx, brandName, locale)
	if err != nil || info == nil {
		return nil, err
	}
	return &entity.BrandProfile{
		LogoImageURL: info.LogoURL(),
		Properties:   info.Properties(info.Locale()),
	}, nil
}

// FetchBrandInfo はブランド名に一致する最初のエンティティの情報を返します。
// 同名のエンティティが複数ある場合は、エンドポイントの並び順で先頭のものが選ばれます。
func (c *Client) FetchBrandInfo(ctx context.Context, brandName string, locale language.Tag) (*BrandInfo, error) {
	name, queryLocale := brandName, locale
	if c.resolver != nil {
		q := c.resolver.ResolveQuery(ctx, brandName, locale)
		name, queryLocale = q.ArticleName, q.APILocale
	}
	base, _ := queryLocale.Base()

	sparql := BuildBrandQuery(name, base.String(), LanguagePreference(queryLocale))
	body, err := c.query(ctx, sparql)
	if err != nil {
		return nil, err
	}

	bindings := body.Get("results.bindings")
	if !bindings.IsArray() {
		return nil, fmt.Errorf("%w: sparql response has no bindings", domain.ErrMalformedResponse)
	}
	first := bindings.Get("0")
	if !first.Exists() {
		return nil, nil
	}
	return newBrandInfo(first, queryLocale), nil
}

func (c *Client) query(ctx context.Context, sparql string) (gjson.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
		}
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("query", sparql)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: wikidata request: %v", domain.ErrTransport, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("%w: wikidata http %d", domain.ErrRemoteService, res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read wikidata body: %v", domain.ErrTransport, err)
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, fmt.Errorf("%w: wikidata body is not JSON", domain.ErrMalformedResponse)
	}
	return gjson.ParseBytes(b), nil
}
