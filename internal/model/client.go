// Package model wraps the external text-generation capability behind an HTTP
// client. The backend speaks the Hugging Face text-generation wire shape:
// POST {inputs, parameters} -> [{generated_text}]. The backend is treated as
// unreliable; every failure surfaces as an error for the caller to absorb.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/dhartushar/titlegen/internal/config"
	"github.com/dhartushar/titlegen/internal/logger"
)

// SamplingParams mirrors the generation parameters of the inference API.
type SamplingParams struct {
	MaxLength     int     `json:"max_length"`
	MinLength     int     `json:"min_length"`
	Temperature   float64 `json:"temperature"`
	NumBeams      int     `json:"num_beams"`
	LengthPenalty float64 `json:"length_penalty"`
	EarlyStopping bool    `json:"early_stopping"`
	DoSample      bool    `json:"do_sample"`
}

// Client calls the seq2seq inference backend. Availability is determined once
// at construction and never changes for the process lifetime.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logger.Logger

	// The backing model is not assumed reentrant, so calls are serialized.
	mu        sync.Mutex
	available bool
}

// NewClient creates a client for the configured inference backend and probes
// it once. A missing base URL or a failed probe marks the client unavailable
// for the rest of the process lifetime.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.ModelBaseURL, "/"),
		model:   cfg.ModelName,
		httpClient: &http.Client{
			Timeout: cfg.ModelTimeout,
		},
		logger: log.WithComponent("model_client"),
	}

	if c.baseURL == "" {
		c.logger.Warn("model base URL not configured, model generation disabled")
		return c
	}

	if cfg.ModelProbeOnStartup {
		if err := c.probe(); err != nil {
			c.logger.Error("model backend unreachable, model generation disabled",
				slog.String("base_url", c.baseURL),
				slog.String("error", err.Error()))
			return c
		}
	}

	c.available = true
	c.logger.Info("model backend ready",
		slog.String("base_url", c.baseURL),
		slog.String("model", c.model))

	return c
}

// Available reports whether the backend was reachable at startup.
func (c *Client) Available() bool {
	return c.available
}

// probe checks that the backend answers HTTP at all. Any HTTP response counts
// as reachable; only transport failures mark the backend unavailable.
func (c *Client) probe() error {
	req, err := http.NewRequest(http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", c.endpoint(), err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)

	return nil
}

func (c *Client) endpoint() string {
	return c.baseURL + "/models/" + c.model
}

// Generate runs one sampling call against the backend and returns the
// generated text candidates.
func (c *Client) Generate(ctx context.Context, prompt string, params SamplingParams) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := map[string]interface{}{
		"inputs":     prompt,
		"parameters": params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.endpoint()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call model at %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned %d: %s (url: %s, model: %s)",
			resp.StatusCode, string(respBody), url, c.model)
	}

	var result []struct {
		GeneratedText string `json:"generated_text"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w (body: %s)", err, string(respBody))
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no candidates in response (body: %s)", string(respBody))
	}

	texts := make([]string, 0, len(result))
	for _, r := range result {
		texts = append(texts, strings.TrimSpace(r.GeneratedText))
	}

	return texts, nil
}
