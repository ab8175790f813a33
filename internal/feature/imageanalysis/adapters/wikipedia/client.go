package wikipedia

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"cloudvision_backend/internal/feature/imageanalysis/domain"
	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
	"cloudvision_backend/internal/shared/ratelimiter"
)

// defaultLanguage は記事名の基準言語です。
const defaultLanguage = "en"

// Client はWikipediaから記事要約を取得するSummarizer実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがSummarizerを実装していることをコンパイル時に検証します。
var _ usecase.Summarizer = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiterがnilの場合は呼び出し頻度を制限しません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if cfg.APIURLTemplate == "" {
		cfg.APIURLTemplate = DefaultAPIURLTemplate
	}
	if cfg.WikiURLTemplate == "" {
		cfg.WikiURLTemplate = DefaultWikiURLTemplate
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SummarizeEntity は英語名で与えられた記事の要約を、可能であれば端末ロケールの言語で返します。
// 記事が存在しない場合は (nil, nil) を返します。
func (c *Client) SummarizeEntity(ctx context.Context, name string, locale language.Tag, maxSentences int) (*entity.ArticleSummary, error) {
	q := c.ResolveQuery(ctx, name, locale)
	return c.fetchExtract(ctx, q, maxSentences)
}

// ResolveQuery は端末ロケールに応じて問い合わせる記事名と言語を決定します。
//
//   - 端末ロケールが英語の場合は元の名前で英語版に問い合わせる
//   - それ以外は英語版のlanglinksで翻訳タイトルを探し、見つかればその言語版を使う
//   - 見つからない（または取得に失敗した）場合は元の名前で英語版に問い合わせる
func (c *Client) ResolveQuery(ctx context.Context, name string, locale language.Tag) entity.EnrichmentQuery {
	lang := baseLanguage(locale)
	if lang == defaultLanguage {
		return c.newQuery(name, language.English, defaultLanguage)
	}

	title, err := c.translatedTitle(ctx, name, lang)
	if err != nil {
		slog.Warn("wikipedia langlinks lookup failed", "name", name, "lang", lang, "error", err)
	}
	if title != "" {
		return c.newQuery(title, locale, lang)
	}
	return c.newQuery(name, language.English, defaultLanguage)
}

func (c *Client) newQuery(title string, locale language.Tag, lang string) entity.EnrichmentQuery {
	return entity.EnrichmentQuery{
		ArticleName: title,
		APILocale:   locale,
		WikiURL:     fmt.Sprintf(c.cfg.WikiURLTemplate, lang, articlePath(title)),
	}
}

// translatedTitle は英語版のlanglinksから指定言語の記事タイトルを返します。見つからない場合は空文字です。
func (c *Client) translatedTitle(ctx context.Context, name, lang string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("utf8", "1")
	q.Set("titles", name)
	q.Set("prop", "langlinks")
	q.Set("lllang", lang)

	body, err := c.get(ctx, defaultLanguage, q)
	if err != nil {
		return "", err
	}
	page, ok := firstPage(body)
	if !ok {
		return "", nil
	}
	for _, ll := range page.Get("langlinks").Array() {
		if ll.Get("lang").String() == lang {
			return ll.Get("\\*").String(), nil
		}
	}
	return "", nil
}

func (c *Client) fetchExtract(ctx context.Context, eq entity.EnrichmentQuery, maxSentences int) (*entity.ArticleSummary, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("utf8", "1")
	q.Set("prop", "extracts")
	q.Set("exsentences", strconv.Itoa(maxSentences))
	q.Set("exsectionformat", "plain")
	q.Set("exintro", "1")
	q.Set("explaintext", "1")
	q.Set("titles", eq.ArticleName)

	body, err := c.get(ctx, baseLanguage(eq.APILocale), q)
	if err != nil {
		return nil, err
	}
	if !body.Get("query.pages").IsObject() {
		return nil, fmt.Errorf("%w: wikipedia response has no pages", domain.ErrMalformedResponse)
	}
	page, ok := firstPage(body)
	if !ok || page.Get("missing").Exists() || page.Get("invalid").Exists() {
		return nil, nil
	}

	title := page.Get("title").String()
	if title == "" {
		title = eq.ArticleName
	}
	return &entity.ArticleSummary{
		Title:      title,
		Extract:    strings.TrimSpace(page.Get("extract").String()),
		ArticleURL: eq.WikiURL,
	}, nil
}

func (c *Client) get(ctx context.Context, lang string, q url.Values) (gjson.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
		}
	}

	u := fmt.Sprintf(c.cfg.APIURLTemplate, lang) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: wikipedia request: %v", domain.ErrTransport, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("%w: wikipedia http %d", domain.ErrRemoteService, res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read wikipedia body: %v", domain.ErrTransport, err)
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, fmt.Errorf("%w: wikipedia body is not JSON", domain.ErrMalformedResponse)
	}
	return gjson.ParseBytes(b), nil
}

// firstPage はページIDをキーとするpagesオブジェクトの最初の要素を返します。
func firstPage(body gjson.Result) (gjson.Result, bool) {
	var page gjson.Result
	found := false
	body.Get("query.pages").ForEach(func(_, v gjson.Result) bool {
		page = v
		found = true
		return false
	})
	return page, found
}

// baseLanguage はロケールの言語部分（"pt-BR" なら "pt"）を返します。
func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// articlePath は記事タイトルをURLパス用の表記（空白をアンダースコア）に変換します。
func articlePath(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
