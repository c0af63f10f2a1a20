package ai

import "context"

// QuestionInput describes the round an interviewer panel needs questions for.
type QuestionInput struct {
	Round         string
	InterviewType string
	Skills        []string
	Count         int
}

// Suggester describes an AI model capable of drafting interview questions.
type Suggester interface {
	SuggestQuestions(ctx context.Context, input QuestionInput) ([]string, error)
}
