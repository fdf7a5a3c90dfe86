package titles

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dhartushar/titlegen/internal/errors"
	"github.com/dhartushar/titlegen/internal/logger"
	"github.com/dhartushar/titlegen/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Blog Title Generator API"
	serviceVersion = "1.0.0"

	minContentLength = 20
	maxContentLength = 5000

	defaultSuggestions = 3
	maxSuggestions     = 5

	// healthProbeContent is deliberately short so the health check exercises
	// the fallback path instead of burning a model call.
	healthProbeContent = "This is a test content for health check."
)

// Handler handles HTTP requests for title suggestions.
type Handler struct {
	engine *Engine
	logger *logger.Logger
	debug  bool
}

// NewHandler creates a new titles handler. When debug is true, 500 responses
// carry diagnostic details.
func NewHandler(engine *Engine, log *logger.Logger, debug bool) *Handler {
	return &Handler{
		engine: engine,
		logger: log,
		debug:  debug,
	}
}

type suggestRequest struct {
	Content string `json:"content"`
	// Accepts numbers and numeric strings; anything else falls back to the
	// default.
	MaxSuggestions interface{} `json:"max_suggestions"`
}

// SuggestTitles handles POST /suggest-titles/ requests.
func (h *Handler) SuggestTitles(c *gin.Context) {
	start := time.Now()
	log := h.logger.WithContext(c.Request.Context()).WithComponent("titles_handler")

	defer func() {
		metrics.RequestDuration.WithLabelValues("suggest_titles").Observe(time.Since(start).Seconds())

		if r := recover(); r != nil {
			log.Error("title suggestion request panicked", slog.Any("panic", r))

			details := ""
			if h.debug {
				details = fmt.Sprint(r)
			}
			errors.AbortWithInternal(c, "Internal server error during title generation", details)
		}
	}()

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.AbortWithBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)

	if content == "" {
		errors.AbortWithBadRequest(c, "Content is required")
		return
	}

	// Length limits count characters, so multibyte content is not penalized.
	contentLength := utf8.RuneCountInString(content)

	if contentLength < minContentLength {
		errors.AbortWithBadRequest(c, fmt.Sprintf("Content too short (minimum %d characters)", minContentLength))
		return
	}

	if contentLength > maxContentLength {
		errors.AbortWithBadRequest(c, fmt.Sprintf("Content too long (maximum %d characters)", maxContentLength))
		return
	}

	numTitles := coerceMaxSuggestions(req.MaxSuggestions)

	log.Info("generating title suggestions",
		slog.Int("max_suggestions", numTitles),
		slog.Int("content_length", contentLength))

	suggestions := h.engine.Generate(c.Request.Context(), content, numTitles)

	processingTime := round2(time.Since(start).Seconds())

	log.Info("title generation completed",
		slog.Int("suggestions", len(suggestions)),
		slog.Float64("processing_time", processingTime))

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"suggestions":     suggestions,
		"processing_time": processingTime,
	})
}

// HealthCheck handles GET /health/ requests. The model subsystem is healthy
// iff a one-title probe returns at least one candidate.
func (h *Handler) HealthCheck(c *gin.Context) {
	modelStatus := "unhealthy"
	if probe := h.engine.Generate(c.Request.Context(), healthProbeContent, 1); len(probe) > 0 {
		modelStatus = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      serviceName,
		"version":      serviceVersion,
		"model_status": modelStatus,
		"endpoints": gin.H{
			"suggest_titles": "/api/blog/suggest-titles/",
			"health_check":   "/api/blog/health/",
		},
	})
}

// coerceMaxSuggestions turns the loosely-typed max_suggestions field into an
// int clamped to [1, maxSuggestions]. Absent or unparseable values use the
// default.
func coerceMaxSuggestions(v interface{}) int {
	n := defaultSuggestions

	switch value := v.(type) {
	case float64:
		n = int(value)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			n = parsed
		}
	}

	if n < 1 {
		n = 1
	}
	if n > maxSuggestions {
		n = maxSuggestions
	}

	return n
}
