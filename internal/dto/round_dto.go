package dto

import (
	"time"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// RoundCreateRequest describes the payload for creating an interview round.
type RoundCreateRequest struct {
	Name                  string   `json:"name" validate:"required,min=3"`
	InterviewType         string   `json:"interview_type" validate:"required,min=2"`
	Designation           string   `json:"designation" validate:"omitempty,min=2"`
	ExpectedAverageRating float64  `json:"expected_average_rating" validate:"gte=0,lte=1"`
	Skills                []string `json:"skills" validate:"required,min=1,dive,min=1"`
	Interviewers          []string `json:"interviewers" validate:"omitempty,dive,email"`
}

// RoundUpdateRequest describes a partial round update.
type RoundUpdateRequest struct {
	Name                  *string  `json:"name" validate:"omitempty,min=3"`
	Designation           *string  `json:"designation" validate:"omitempty,min=2"`
	ExpectedAverageRating *float64 `json:"expected_average_rating" validate:"omitempty,gte=0,lte=1"`
	Skills                []string `json:"skills" validate:"omitempty,min=1,dive,min=1"`
	Interviewers          []string `json:"interviewers" validate:"omitempty,dive,email"`
}

// RoundListRequest captures list query parameters.
type RoundListRequest struct {
	Search   string `json:"search"`
	Page     int    `json:"page" validate:"gte=0"`
	PageSize int    `json:"page_size" validate:"gte=0,lte=100"`
}

// RoundResponse is the serialized interview round returned to clients.
type RoundResponse struct {
	ID                    uint      `json:"id"`
	Name                  string    `json:"name"`
	InterviewType         string    `json:"interview_type"`
	Designation           string    `json:"designation,omitempty"`
	ExpectedAverageRating float64   `json:"expected_average_rating"`
	Skills                []string  `json:"skills"`
	Interviewers          []string  `json:"interviewers"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RoundListResponse wraps a page of rounds.
type RoundListResponse struct {
	Items      []RoundResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// SuggestedQuestionsResponse carries AI-generated questions for a round.
type SuggestedQuestionsResponse struct {
	Round     string   `json:"round"`
	Skills    []string `json:"skills"`
	Questions []string `json:"questions"`
}

// NewRoundResponse converts a round model into a DTO.
func NewRoundResponse(round models.InterviewRound) RoundResponse {
	interviewers := make([]string, 0, len(round.Interviewers))
	for _, member := range round.Interviewers {
		interviewers = append(interviewers, member.Email)
	}

	response := RoundResponse{
		ID:                    round.ID,
		Name:                  round.Name,
		InterviewType:         round.InterviewType.Name,
		ExpectedAverageRating: round.ExpectedAverageRating,
		Skills:                round.SkillNames(),
		Interviewers:          interviewers,
		CreatedAt:             round.CreatedAt,
		UpdatedAt:             round.UpdatedAt,
	}
	if round.Designation != nil {
		response.Designation = round.Designation.Name
	}
	return response
}

// NewRoundResponseSlice converts a slice of round models into DTOs.
func NewRoundResponseSlice(rounds []models.InterviewRound) []RoundResponse {
	responses := make([]RoundResponse, 0, len(rounds))
	for _, round := range rounds {
		responses = append(responses, NewRoundResponse(round))
	}
	return responses
}
