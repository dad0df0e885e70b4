// Package ai turns study notes into flashcards through a text model.
//
// The model call and the response parsing are kept apart: Model only moves
// text, ParseCards is pure and owns every rule about what counts as a card.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrGeneration covers every way a model response can fail to produce cards.
var ErrGeneration = errors.New("failed to generate flashcards with AI")

// Card is a generated flashcard before it is persisted.
type Card struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// Generator produces up to count cards from notes.
type Generator interface {
	Generate(ctx context.Context, notes string, count int) ([]Card, error)
}

// Model completes a prompt with free text.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var generations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_flashcard_generations_total",
		Help: "Flashcard generation attempts by outcome",
	},
	[]string{"outcome"},
)

// ModelGenerator is the Generator backed by a Model.
type ModelGenerator struct {
	model Model
}

func NewGenerator(model Model) *ModelGenerator {
	return &ModelGenerator{model: model}
}

func (g *ModelGenerator) Generate(ctx context.Context, notes string, count int) ([]Card, error) {
	text, err := g.model.Complete(ctx, BuildPrompt(notes, count))
	if err != nil {
		generations.WithLabelValues("model_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	cards, err := ParseCards(text, count)
	if err != nil {
		generations.WithLabelValues("parse_error").Inc()
		return nil, err
	}

	generations.WithLabelValues("ok").Inc()
	return cards, nil
}
