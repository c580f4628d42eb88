package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mockbot-be/internal/pkg/apperror"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator is the contract the chat service depends on, so tests can
// substitute a fake upstream.
type Generator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

type chatParts struct {
	Text string `json:"text"`
}

type chatContent struct {
	Parts []*chatParts `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type chatRequest struct {
	Contents         []*chatContent   `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type chatCandidate struct {
	Content *chatContent `json:"content"`
}

type chatResponse struct {
	Candidates []*chatCandidate `json:"candidates"`
}

type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the generative-language generateContent endpoint over
// plain HTTP. It never retries; retry policy belongs to the caller.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// GenerateReply sends the assembled prompt and returns the first
// candidate's trimmed text. Upstream failures are translated into the
// application error taxonomy at this boundary; the raw provider error
// shape never leaks past it.
func (c *Client) GenerateReply(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperror.Upstream(apperror.KindUpstreamAuth,
			"AI service is not configured. Please check server configuration.", "missing API key")
	}

	payload := chatRequest{
		Contents: []*chatContent{
			{Parts: []*chatParts{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.8,
			MaxOutputTokens: 150,
			TopP:            0.9,
			TopK:            50,
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", apperror.Internal(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", apperror.Internal(err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", apperror.Upstream(apperror.KindUpstreamTimeout,
				"AI service request timed out. Please try again.", "request took too long to complete")
		}
		return "", apperror.Upstream(apperror.KindUpstreamUnknown,
			"Failed to get response from AI service. Please try again.", err.Error())
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperror.Upstream(apperror.KindUpstreamUnknown,
			"Failed to get response from AI service. Please try again.", err.Error())
	}

	if res.StatusCode != http.StatusOK {
		return "", c.mapStatusError(res, resBody)
	}

	var geminiRes chatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", apperror.Upstream(apperror.KindUpstreamUnknown,
			"Failed to get response from AI service. Please try again.", err.Error())
	}

	reply := firstCandidateText(&geminiRes)
	if strings.TrimSpace(reply) == "" {
		return "", apperror.Upstream(apperror.KindUpstreamEmpty,
			"AI response was empty. Please try again.", "no text in upstream candidates")
	}

	return strings.TrimSpace(reply), nil
}

func (c *Client) mapStatusError(res *http.Response, body []byte) error {
	details := upstreamDetails(body)

	switch res.StatusCode {
	case http.StatusBadRequest:
		return apperror.Upstream(apperror.KindUpstreamBadRequest,
			"Invalid request to AI service. Please check your input.", details)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperror.Upstream(apperror.KindUpstreamAuth,
			"AI service authentication failed. Please check API key.", details)
	case http.StatusTooManyRequests:
		appErr := apperror.Upstream(apperror.KindUpstreamRateLimited,
			"AI service rate limit exceeded. Please try again later.", details)
		if retryAfter, err := strconv.Atoi(res.Header.Get("Retry-After")); err == nil {
			appErr.RetryAfterSeconds = retryAfter
		}
		return appErr
	default:
		return apperror.Upstream(apperror.KindUpstreamUnknown,
			"Failed to get response from AI service. Please try again.",
			fmt.Sprintf("status %d: %s", res.StatusCode, details))
	}
}

func upstreamDetails(body []byte) string {
	var parsed upstreamErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func firstCandidateText(res *chatResponse) string {
	if len(res.Candidates) == 0 {
		return ""
	}
	content := res.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
