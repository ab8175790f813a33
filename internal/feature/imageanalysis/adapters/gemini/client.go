// Package gemini はGoogle Gemini APIを使用したブランド説明文の生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"google.golang.org/genai"

	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// descriptionPromptTemplate はブランド説明文のプロンプトテンプレートです。
	descriptionPromptTemplate = "Describe the brand %q in at most %d sentences, in %s. Answer with plain text only."
	// descriptionSentences は生成する説明文の最大文数です。
	descriptionSentences = 3
)

// Config はGeminiクライアントの設定です。
type Config struct {
	Enabled bool
	Model   string
	APIKey  string // 空の場合は環境変数の設定（Vertex AI + ADC など）に従う
}

// GeminiDescriber はGoogle Gemini APIを使用してブランドの説明文を生成します。
type GeminiDescriber struct {
	models generator
	model  string
}

// generator はgenai.Modelsのうち使用するメソッドです。
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiDescriberがDescriptionGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.DescriptionGenerator = (*GeminiDescriber)(nil)

// NewGeminiDescriber はGeminiDescriberの新しいインスタンスを生成します。
// APIKeyが空の場合は環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION を使用します。
func NewGeminiDescriber(ctx context.Context, cfg Config) (*GeminiDescriber, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDescriber{models: client.Models, model: model}, nil
}

// DescribeBrand はブランドの短い説明文をlocaleの言語で生成します。
func (g *GeminiDescriber) DescribeBrand(ctx context.Context, brandName string, locale language.Tag) (string, error) {
	prompt := BuildPrompt(brandName, locale)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}

// BuildPrompt はブランド名とロケールから生成プロンプトを組み立てます。
func BuildPrompt(brandName string, locale language.Tag) string {
	base, _ := locale.Base()
	name := display.English.Languages().Name(language.Make(base.String()))
	if name == "" {
		name = "English"
	}
	return fmt.Sprintf(descriptionPromptTemplate, brandName, descriptionSentences, name)
}
