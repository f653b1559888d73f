package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
)

// StartQuizRequest is the payload of POST /api/decks/{deckID}/quiz.
type StartQuizRequest struct {
	Direction string `json:"direction" validate:"required,oneof=source_to_target target_to_source"`

	// QuestionCount of zero selects the configured default.
	QuestionCount int `json:"question_count" validate:"gte=0,lte=100"`
}

// SubmitAnswerRequest is the payload of POST /api/quiz/answers.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// WordInput is one vocabulary item sent to the stateless generation
// endpoint.
type WordInput struct {
	ID         uuid.UUID `json:"id"          validate:"required"`
	SourceTerm string    `json:"source_term" validate:"required"`
	TargetTerm string    `json:"target_term" validate:"required"`
	WordType   string    `json:"word_type"`
}

// GenerateSentencesRequest is the payload of POST /api/sentences.
type GenerateSentencesRequest struct {
	Words []WordInput `json:"words" validate:"required,min=1,max=20,dive"`

	// Count, when set, must equal the number of words.
	Count          int    `json:"count"          validate:"gte=0"`
	SourceLanguage string `json:"sourceLanguage" validate:"required"`
	TargetLanguage string `json:"targetLanguage" validate:"required"`
	Direction      string `json:"direction"      validate:"required,oneof=source_to_target target_to_source"`
}

// GenerateSentencesResponse is the response of POST /api/sentences.
type GenerateSentencesResponse struct {
	Sentences []domain.GeneratedQuestion `json:"sentences"`
}

// GradeAnswerRequest is the payload of POST /api/grade.
type GradeAnswerRequest struct {
	Sentence           string `json:"sentence"           validate:"required"`
	CorrectTranslation string `json:"correctTranslation" validate:"required"`
	UserAnswer         string `json:"userAnswer"         validate:"required"`
	SourceLanguage     string `json:"sourceLanguage"     validate:"required"`
	TargetLanguage     string `json:"targetLanguage"     validate:"required"`
}
