package ai

import (
	"strings"
	"testing"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeCards = `[
  {"question": "What is Go?", "answer": "A language", "difficulty": "EASY"},
  {"question": "What is a goroutine?", "answer": "A lightweight thread", "difficulty": "MEDIUM"},
  {"question": "What is a channel?", "answer": "A typed conduit", "difficulty": "HARD"}
]`

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		count   int
		want    int
		wantErr bool
	}{
		{name: "plain array", text: threeCards, count: 5, want: 3},
		{name: "json fence", text: "```json\n" + threeCards + "\n```", count: 5, want: 3},
		{name: "bare fence", text: "```\n" + threeCards + "\n```", count: 5, want: 3},
		{name: "surrounding whitespace", text: "\n\n  " + threeCards + "  \n", count: 5, want: 3},
		{name: "truncated to count", text: threeCards, count: 2, want: 2},
		{name: "not json", text: "Sure! Here are your flashcards.", count: 5, wantErr: true},
		{name: "object not array", text: `{"question":"q","answer":"a","difficulty":"EASY"}`, count: 5, wantErr: true},
		{name: "empty array", text: `[]`, count: 5, wantErr: true},
		{name: "nothing valid", text: `[{"question":"q","answer":"a","difficulty":"TRIVIAL"}]`, count: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.text, tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGeneration)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cards, tt.want)
		})
	}
}

func TestParseCardsFiltersInvalidEntries(t *testing.T) {
	text := `[
	  {"question": "", "answer": "no question", "difficulty": "EASY"},
	  {"question": "no answer", "answer": "   ", "difficulty": "EASY"},
	  {"question": "lower case", "answer": "a", "difficulty": "easy"},
	  {"question": 42, "answer": "wrong type", "difficulty": "EASY"},
	  "not an object",
	  {"question": "` + strings.Repeat("q", 1001) + `", "answer": "too long", "difficulty": "EASY"},
	  {"question": " Keep me? ", "answer": " yes ", "difficulty": "HARD"}
	]`

	cards, err := ParseCards(text, 5)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, Card{Question: "Keep me?", Answer: "yes", Difficulty: models.DifficultyHard}, cards[0])
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Goroutines are cheap.", 7)
	assert.Contains(t, prompt, "Generate exactly 7 flashcards")
	assert.Contains(t, prompt, "Study Notes:\nGoroutines are cheap.")
	assert.True(t, strings.HasSuffix(prompt, "Return ONLY the JSON array:"))
}
