package dto

import (
	"time"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// ApplicantCreateRequest describes the payload for registering an applicant.
type ApplicantCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=32"`
	Source      string `json:"source" validate:"omitempty,max=140"`
	Designation string `json:"designation" validate:"omitempty,min=2"`
}

// ApplicantUpdateRequest describes a partial applicant update.
type ApplicantUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Phone       *string `json:"phone" validate:"omitempty,min=7,max=32"`
	Status      *string `json:"status" validate:"omitempty,oneof=open hold accepted rejected"`
	Designation *string `json:"designation" validate:"omitempty,min=2"`
}

// ApplicantResponse is the serialized applicant returned to API clients.
type ApplicantResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Source      string    `json:"source,omitempty"`
	Status      string    `json:"status"`
	Designation string    `json:"designation,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicantListResponse wraps a page of applicants.
type ApplicantListResponse struct {
	Items      []ApplicantResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// InterviewSnapshot is the denormalized per-interview entry on the applicant
// summary. Ratings arrive scaled by the star scale.
type InterviewSnapshot struct {
	Name                  string  `json:"name"`
	InterviewRound        string  `json:"interview_round"`
	ScheduledOn           string  `json:"scheduled_on"`
	AverageRating         float64 `json:"average_rating"`
	ExpectedAverageRating float64 `json:"expected_average_rating"`
	Status                string  `json:"status"`
}

// ApplicantSummaryResponse feeds the applicant dashboard.
type ApplicantSummaryResponse struct {
	Stars      int                          `json:"stars"`
	Interviews map[string]InterviewSnapshot `json:"interviews"`
}

// NewApplicantResponse converts an applicant model into a DTO.
func NewApplicantResponse(applicant models.JobApplicant) ApplicantResponse {
	response := ApplicantResponse{
		ID:        applicant.ID,
		Name:      applicant.Name,
		Email:     applicant.Email,
		Phone:     applicant.Phone,
		Source:    applicant.Source,
		Status:    applicant.Status,
		ResumeURL: applicant.ResumeURL,
		CreatedAt: applicant.CreatedAt,
		UpdatedAt: applicant.UpdatedAt,
	}
	if applicant.Designation.Name != "" {
		response.Designation = applicant.Designation.Name
	}
	return response
}

// NewApplicantResponseSlice converts a slice of applicant models into DTOs.
func NewApplicantResponseSlice(applicants []models.JobApplicant) []ApplicantResponse {
	responses := make([]ApplicantResponse, 0, len(applicants))
	for _, applicant := range applicants {
		responses = append(responses, NewApplicantResponse(applicant))
	}
	return responses
}
