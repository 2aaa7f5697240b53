package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// LLMClient generates market analysis reports via the Gemini
// generateContent REST endpoint.
type LLMClient struct {
	apiKey    string
	modelName string
	baseURL   string
	client    *http.Client
}

// LLMOption defines a function type to modify the LLMClient instance.
type LLMOption func(*LLMClient)

// WithBaseURL overrides the API endpoint (primarily for testing).
func WithBaseURL(baseURL string) LLMOption {
	return func(c *LLMClient) {
		c.baseURL = baseURL
	}
}

func NewLLMClient(apiKey, modelName string, options ...LLMOption) *LLMClient {
	client := &LLMClient{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   defaultGeminiBaseURL,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Analyze turns the collected snippets into a markdown report. A missing
// API key or model degrades to an explanatory message rather than an
// error: the request path stays alive, matching how the service reports
// every analysis-stage problem to the client.
func (c *LLMClient) Analyze(ctx context.Context, sector string, snippets []Snippet) (string, error) {
	if c.apiKey == "" {
		log.Warn().Msg("LLM_API_KEY is not configured")
		return "Unable to perform analysis. API key is not configured.", nil
	}
	if c.modelName == "" {
		log.Warn().Msg("LLM_MODEL_NAME is not configured")
		return "Unable to perform analysis. Model name is not configured.", nil
	}

	report, err := c.generateContent(ctx, BuildPrompt(sector, snippets))
	if err != nil {
		return "", errors.Wrap(err, "[LLMClient.Analyze] generateContent")
	}
	return report, nil
}

// BuildPrompt assembles the analyst prompt from the sector and its
// collected sources.
func BuildPrompt(sector string, snippets []Snippet) string {
	var b bytes.Buffer
	fmt.Fprintf(&b,
		"You are an expert market analyst. Produce a structured Markdown report "+
			"about current trade opportunities in the '%s' sector. "+
			"Use the following collected information as input and do not hallucinate facts.\n\n", sector)

	for i, sn := range snippets {
		fmt.Fprintf(&b, "Source %d: %s. %s. Link: %s\n\n", i+1, sn.Title, sn.Text, sn.Link)
	}

	b.WriteString("Produce sections: Summary, Key Drivers, Top Opportunities, Risks, " +
		"Suggested Trades (long/short ideas), Data Sources.")
	return b.String()
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *LLMClient) generateContent(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshalling request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling model endpoint")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("model returned no candidates")
	}

	var report bytes.Buffer
	for _, p := range parsed.Candidates[0].Content.Parts {
		report.WriteString(p.Text)
	}
	return report.String(), nil
}
