package intention

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	appLog "spiritedlamb/internal/log"
)

// GeminiConfig configures the Gemini-backed provider.
type GeminiConfig struct {
	APIKey string
	Model  string
	Prompt string

	// BaseURL and HTTPClient override the API endpoint; tests point them at
	// an httptest server.
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini asks the Gemini API for one sentence per call. Without an API key
// it never touches the network.
type Gemini struct {
	cfg GeminiConfig

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGemini(cfg GeminiConfig) *Gemini {
	return &Gemini{cfg: cfg}
}

// Enabled reports whether a credential is configured.
func (g *Gemini) Enabled() bool {
	return g.cfg.APIKey != ""
}

func (g *Gemini) FetchDailyIntention(ctx context.Context) string {
	if !g.Enabled() {
		appLog.Debug("daily intention skipped: no api key")
		return Fallback
	}

	text, err := g.generate(ctx)
	if err != nil {
		appLog.Error("daily intention request failed", err, "model", g.cfg.Model)
		return Fallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyReply
	}
	return text
}

func (g *Gemini) generate(ctx context.Context) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(g.cfg.Prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("generate content: empty response")
	}
	return resp.Text(), nil
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     g.cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: g.cfg.HTTPClient,
		}
		if g.cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
		}
		g.client, g.initErr = genai.NewClient(ctx, cc)
		if g.initErr != nil {
			g.initErr = fmt.Errorf("genai client: %w", g.initErr)
		}
	})
	return g.client, g.initErr
}
