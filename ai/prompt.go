package ai

import "fmt"

const promptTemplate = `You are a helpful study assistant. Generate exactly %d flashcards from the following study notes.

IMPORTANT: Return ONLY a valid JSON array with no additional text, explanations, or markdown formatting.

The JSON must have this exact structure:
[
  {
    "question": "Your question here?",
    "answer": "Your answer here",
    "difficulty": "EASY"
  }
]

Guidelines:
- Each flashcard should have a clear question and concise answer
- Difficulty should be one of: "EASY", "MEDIUM", "HARD"
- Focus on key concepts, definitions, and important facts
- Make questions specific and testable
- Answers should be clear and factual

Study Notes:
%s

Return ONLY the JSON array:`

func BuildPrompt(notes string, count int) string {
	return fmt.Sprintf(promptTemplate, count, notes)
}
