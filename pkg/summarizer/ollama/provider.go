package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"keepwise-be/pkg/summarizer"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements Provider
var _ summarizer.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func buildInstruction(opts summarizer.Options) string {
	var b strings.Builder
	b.WriteString("Summarize the text provided by the user.")

	switch opts.Type {
	case "key-points":
		b.WriteString(" Produce a bullet list of the key points.")
	case "headline":
		b.WriteString(" Produce a single headline.")
	case "teaser":
		b.WriteString(" Produce a short teaser that entices the reader.")
	default:
		b.WriteString(" Produce a tl;dr style summary.")
	}

	switch opts.Length {
	case "short":
		b.WriteString(" Keep it to one or two sentences.")
	case "long":
		b.WriteString(" A few paragraphs are acceptable.")
	default:
		b.WriteString(" Keep it to one short paragraph.")
	}

	if opts.Format == "markdown" {
		b.WriteString(" Format the output as Markdown.")
	} else {
		b.WriteString(" Output plain text without any markup.")
	}

	b.WriteString(" Reply with the summary only.")
	return b.String()
}

func (o *OllamaProvider) Summarize(ctx context.Context, text string, opts summarizer.Options) (string, error) {
	reqPayload := ollamaChatRequest{
		Model: o.ModelName,
		Messages: []ollamaMessage{
			{Role: "system", Content: buildInstruction(opts)},
			{Role: "user", Content: text},
		},
		Stream: false,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return strings.TrimSpace(ollamaResp.Message.Content), nil
}
