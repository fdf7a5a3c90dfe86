package titles

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, gen TextGenerator) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	engine := NewEngine(gen, log)
	handler := NewHandler(engine, log, false)

	router := gin.New()
	api := router.Group("/api/blog")
	api.POST("/suggest-titles/", handler.SuggestTitles)
	api.GET("/health/", handler.HealthCheck)

	return router
}

func postSuggest(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/blog/suggest-titles/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

type suggestResponse struct {
	Success        bool        `json:"success"`
	Suggestions    []Candidate `json:"suggestions"`
	ProcessingTime float64     `json:"processing_time"`
	Error          string      `json:"error"`
}

func TestSuggestTitlesSuccess(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{available: false})

	w := postSuggest(t, router, `{"content": "A sufficiently long piece of content about clouds and servers.", "max_suggestions": 3}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp suggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success=true")
	}

	if len(resp.Suggestions) == 0 || len(resp.Suggestions) > 3 {
		t.Errorf("Expected 1-3 suggestions, got %d", len(resp.Suggestions))
	}

	if resp.ProcessingTime < 0 {
		t.Errorf("Negative processing time: %v", resp.ProcessingTime)
	}

	for i, s := range resp.Suggestions {
		if s.Method == MethodAI {
			t.Errorf("Suggestion %d has method ai with an unavailable model", i)
		}
	}
}

func TestSuggestTitlesValidation(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{available: false})

	tests := map[string]struct {
		body      string
		wantError string
	}{
		"missing_content": {
			body:      `{}`,
			wantError: "Content is required",
		},
		"blank_content": {
			body:      `{"content": "   "}`,
			wantError: "Content is required",
		},
		"too_short": {
			body:      `{"content": "tiny text"}`,
			wantError: "Content too short",
		},
		"too_long": {
			body:      `{"content": "` + strings.Repeat("a", 5001) + `"}`,
			wantError: "Content too long",
		},
		"malformed_json": {
			body:      `{"content":`,
			wantError: "Invalid request body",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := postSuggest(t, router, tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp suggestResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}

			if resp.Success {
				t.Error("Expected success=false")
			}

			if !strings.Contains(resp.Error, tc.wantError) {
				t.Errorf("Error = %q, want it to contain %q", resp.Error, tc.wantError)
			}
		})
	}
}

func TestSuggestTitlesLengthLimitsCountCharacters(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{available: false})

	// 3000 characters but 6000 bytes; only a byte-based limit would reject it.
	within := postSuggest(t, router, `{"content": "`+strings.Repeat("é", 3000)+`"}`)
	if within.Code != http.StatusOK {
		t.Errorf("Expected status 200 for 3000-character content, got %d: %s", within.Code, within.Body.String())
	}

	over := postSuggest(t, router, `{"content": "`+strings.Repeat("é", 5001)+`"}`)
	if over.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for 5001-character content, got %d", over.Code)
	}
}

func TestSuggestTitlesMaxSuggestionsCoercion(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{available: false})

	tests := map[string]struct {
		body    string
		wantMax int
	}{
		"absent_defaults_to_three": {
			body:    `{"content": "A sufficiently long piece of content about clouds and servers."}`,
			wantMax: 3,
		},
		"numeric_string": {
			body:    `{"content": "A sufficiently long piece of content about clouds and servers.", "max_suggestions": "2"}`,
			wantMax: 2,
		},
		"clamped_to_five": {
			body:    `{"content": "A sufficiently long piece of content about clouds and servers.", "max_suggestions": 99}`,
			wantMax: 5,
		},
		"invalid_defaults_to_three": {
			body:    `{"content": "A sufficiently long piece of content about clouds and servers.", "max_suggestions": "lots"}`,
			wantMax: 3,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := postSuggest(t, router, tc.body)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}

			var resp suggestResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}

			if len(resp.Suggestions) > tc.wantMax {
				t.Errorf("Expected at most %d suggestions, got %d", tc.wantMax, len(resp.Suggestions))
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{available: false})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/health/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Status      string            `json:"status"`
		Service     string            `json:"service"`
		Version     string            `json:"version"`
		ModelStatus string            `json:"model_status"`
		Endpoints   map[string]string `json:"endpoints"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want %q", resp.Status, "healthy")
	}

	// The probe content routes through the fallback tiers, which always
	// produce a candidate.
	if resp.ModelStatus != "healthy" {
		t.Errorf("ModelStatus = %q, want %q", resp.ModelStatus, "healthy")
	}

	if resp.Service != serviceName || resp.Version != serviceVersion {
		t.Errorf("Unexpected service identity: %q %q", resp.Service, resp.Version)
	}

	if resp.Endpoints["suggest_titles"] == "" {
		t.Error("Expected suggest_titles endpoint in health response")
	}
}
