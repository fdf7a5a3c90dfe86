package titles

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/dhartushar/titlegen/internal/logger"
	"github.com/dhartushar/titlegen/internal/metrics"
	"github.com/dhartushar/titlegen/internal/model"
)

const (
	// minContentWords is the floor below which content is too thin to prompt
	// the model with.
	minContentWords = 10
	// maxAttempts caps model sampling attempts per request.
	maxAttempts = 5
	// minTitleWords rejects degenerate model output.
	minTitleWords = 3

	promptPrefix = "headline: "
)

// TextGenerator is the external generation capability consumed by the engine.
// It may fail arbitrarily; the engine treats every call as unreliable.
type TextGenerator interface {
	Available() bool
	Generate(ctx context.Context, prompt string, params model.SamplingParams) ([]string, error)
}

// Engine orchestrates the generation cascade: model attempts first, then
// rule-based templates, then keyword fallbacks, then static titles. It
// prefers degraded output over failure at every tier.
type Engine struct {
	generator TextGenerator
	logger    *logger.Logger
}

// NewEngine creates a title generation engine around the given capability.
// The generator's availability is fixed for the process lifetime.
func NewEngine(generator TextGenerator, log *logger.Logger) *Engine {
	return &Engine{
		generator: generator,
		logger:    log.WithComponent("title_engine"),
	}
}

// Generate returns up to numTitles candidates for the given content. It never
// fails: any unexpected panic in the cascade is converted into a full basic
// fallback response for the original content.
func (e *Engine) Generate(ctx context.Context, content string, numTitles int) (candidates []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithContext(ctx).Error("generation cascade failed, serving basic fallback",
				slog.Any("panic", r))
			candidates = e.basicFallbackTitles(numTitles)
		}

		for _, c := range candidates {
			metrics.SuggestionsTotal.WithLabelValues(string(c.Method)).Inc()
		}
	}()

	return e.generate(ctx, content, numTitles)
}

func (e *Engine) generate(ctx context.Context, content string, numTitles int) []Candidate {
	log := e.logger.WithContext(ctx)

	cleaned := CleanContent(content)

	if len(strings.Fields(cleaned)) < minContentWords {
		log.Warn("content too short for model generation, using basic fallback",
			slog.Int("word_count", len(strings.Fields(cleaned))))
		return e.basicFallbackTitles(numTitles)
	}

	var titles []Candidate

	if e.generator != nil && e.generator.Available() {
		attempts := numTitles
		if attempts > maxAttempts {
			attempts = maxAttempts
		}

		for i := 0; i < attempts; i++ {
			// Raise the temperature a notch per attempt for diversity.
			params := model.SamplingParams{
				MaxLength:     15,
				MinLength:     8,
				Temperature:   0.9 + 0.1*float64(i),
				NumBeams:      3,
				LengthPenalty: 1.0,
				EarlyStopping: true,
				DoSample:      true,
			}

			outputs, err := e.generator.Generate(ctx, promptPrefix+cleaned, params)
			if err != nil {
				metrics.ModelAttemptFailures.Inc()
				log.Warn("model sampling attempt failed",
					slog.Int("attempt", i+1),
					slog.String("error", err.Error()))
				continue
			}

			if len(outputs) == 0 {
				continue
			}

			title := FormatTitle(outputs[0])
			if title == "" || len(strings.Fields(title)) < minTitleWords || containsTitle(titles, title) {
				continue
			}

			// Later attempts run hotter, so trust them less.
			confidence := 0.9 - 0.1*float64(i)
			if confidence < 0.6 {
				confidence = 0.6
			}

			titles = append(titles, Candidate{
				Title:      title,
				Confidence: round2(confidence),
				Method:     MethodAI,
			})
		}
	} else {
		log.Warn("model unavailable, using rule-based generation")
		titles = e.ruleBasedTitles(cleaned, numTitles)
	}

	// Top up any shortfall with smart fallbacks. A duplicate means the
	// keyword pool is exhausted; stop rather than loop.
	for len(titles) < numTitles {
		fb := e.smartFallbackTitle(cleaned, len(titles))
		if containsTitle(titles, fb.Title) {
			break
		}
		// Confidence must stay non-increasing in list order; a top-up
		// candidate never outranks the one before it.
		if n := len(titles); n > 0 && fb.Confidence > titles[n-1].Confidence {
			fb.Confidence = titles[n-1].Confidence
		}
		titles = append(titles, fb)
	}

	if len(titles) > numTitles {
		titles = titles[:numTitles]
	}

	return titles
}

func containsTitle(candidates []Candidate, title string) bool {
	for _, c := range candidates {
		if c.Title == title {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
