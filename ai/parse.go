package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andrewpaige1/learning-tracker/models"
)

const (
	maxQuestionLen = 1000
	maxAnswerLen   = 2000
)

// ParseCards extracts at most count valid cards from a model response.
// A surrounding markdown code fence is removed first. Entries missing a
// question or answer, with an unknown difficulty, or too long to store are
// dropped. It fails when the text is not a JSON array or nothing survives.
func ParseCards(text string, count int) ([]Card, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(stripFence(text)), &items); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON array: %v", ErrGeneration, err)
	}

	cards := make([]Card, 0, min(len(items), count))
	for _, item := range items {
		if len(cards) == count {
			break
		}

		var raw struct {
			Question   string `json:"question"`
			Answer     string `json:"answer"`
			Difficulty string `json:"difficulty"`
		}
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}

		card := Card{
			Question:   strings.TrimSpace(raw.Question),
			Answer:     strings.TrimSpace(raw.Answer),
			Difficulty: models.Difficulty(raw.Difficulty),
		}
		if card.Question == "" || card.Answer == "" || !card.Difficulty.Valid() {
			continue
		}
		if utf8.RuneCountInString(card.Question) > maxQuestionLen || utf8.RuneCountInString(card.Answer) > maxAnswerLen {
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no valid flashcards in response", ErrGeneration)
	}
	return cards, nil
}

// stripFence removes a leading ``` or ```json line and a trailing ``` line.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
