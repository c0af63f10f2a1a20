package dto

import (
	"time"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// InterviewScheduleRequest describes the payload for scheduling an interview.
type InterviewScheduleRequest struct {
	JobApplicantID   uint     `json:"job_applicant_id" validate:"required"`
	InterviewRoundID uint     `json:"interview_round_id" validate:"required"`
	ScheduledOn      string   `json:"scheduled_on" validate:"required,datetime=2006-01-02"`
	FromTime         string   `json:"from_time" validate:"required,datetime=15:04:05"`
	ToTime           string   `json:"to_time" validate:"required,datetime=15:04:05"`
	Interviewers     []string `json:"interviewers" validate:"omitempty,dive,email"`
}

// InterviewRescheduleRequest carries the new slot for an existing interview.
type InterviewRescheduleRequest struct {
	ScheduledOn string `json:"scheduled_on" validate:"required,datetime=2006-01-02"`
	FromTime    string `json:"from_time" validate:"required,datetime=15:04:05"`
	ToTime      string `json:"to_time" validate:"required,datetime=15:04:05"`
}

// InterviewStatusRequest updates the session status.
type InterviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'Under Review' Cleared Rejected"`
}

// InterviewListRequest captures interview list query parameters.
type InterviewListRequest struct {
	ApplicantID *uint
	Status      string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// FeedbackRequest is one interviewer's assessment submission.
type FeedbackRequest struct {
	Interviewer string            `json:"interviewer" validate:"required,email"`
	Result      string            `json:"result" validate:"required,oneof=Cleared Rejected"`
	Feedback    string            `json:"feedback" validate:"omitempty,max=4000"`
	Ratings     map[string]float64 `json:"ratings" validate:"required,min=1,dive,gte=0,lte=1"`
}

// InterviewerResponse is the serialized panel assignment.
type InterviewerResponse struct {
	Interviewer   string  `json:"interviewer"`
	AverageRating float64 `json:"average_rating"`
	Comments      string  `json:"comments,omitempty"`
}

// InterviewResponse is the serialized interview returned to API clients.
type InterviewResponse struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	ApplicantID   uint                  `json:"job_applicant_id"`
	Round         string                `json:"interview_round"`
	RoundID       uint                  `json:"interview_round_id"`
	ScheduledOn   string                `json:"scheduled_on"`
	FromTime      string                `json:"from_time"`
	ToTime        string                `json:"to_time"`
	Status        string                `json:"status"`
	AverageRating float64               `json:"average_rating"`
	ReminderSent  bool                  `json:"reminder_sent"`
	Interviewers  []InterviewerResponse `json:"interviewers"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InterviewListResponse wraps a page of interviews.
type InterviewListResponse struct {
	Items      []InterviewResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// FeedbackResponse is the serialized feedback document.
type FeedbackResponse struct {
	ID            uint               `json:"id"`
	InterviewID   uint               `json:"interview_id"`
	Interviewer   string             `json:"interviewer"`
	Result        string             `json:"result"`
	Feedback      string             `json:"feedback,omitempty"`
	AverageRating float64            `json:"average_rating"`
	Ratings       map[string]float64 `json:"ratings"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewInterviewResponse converts an interview model into a DTO.
func NewInterviewResponse(interview models.Interview) InterviewResponse {
	interviewers := make([]InterviewerResponse, 0, len(interview.Details))
	for _, detail := range interview.Details {
		interviewers = append(interviewers, InterviewerResponse{
			Interviewer:   detail.Interviewer,
			AverageRating: detail.AverageRating,
			Comments:      detail.Comments,
		})
	}

	return InterviewResponse{
		ID:            interview.ID,
		Name:          interview.Name(),
		ApplicantID:   interview.JobApplicantID,
		Round:         interview.InterviewRound.Name,
		RoundID:       interview.InterviewRoundID,
		ScheduledOn:   time.Time(interview.ScheduledOn).Format("2006-01-02"),
		FromTime:      interview.FromTime,
		ToTime:        interview.ToTime,
		Status:        interview.Status,
		AverageRating: interview.AverageRating,
		ReminderSent:  interview.ReminderSent,
		Interviewers:  interviewers,
		CreatedAt:     interview.CreatedAt,
		UpdatedAt:     interview.UpdatedAt,
	}
}

// NewInterviewResponseSlice converts a slice of interview models into DTOs.
func NewInterviewResponseSlice(interviews []models.Interview) []InterviewResponse {
	responses := make([]InterviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		responses = append(responses, NewInterviewResponse(interview))
	}
	return responses
}

// NewFeedbackResponse converts a feedback model into a DTO.
func NewFeedbackResponse(feedback models.InterviewFeedback) FeedbackResponse {
	ratings := make(map[string]float64, len(feedback.Assessments))
	for _, assessment := range feedback.Assessments {
		ratings[assessment.Skill.Name] = assessment.Rating
	}

	return FeedbackResponse{
		ID:            feedback.ID,
		InterviewID:   feedback.InterviewID,
		Interviewer:   feedback.Interviewer,
		Result:        feedback.Result,
		Feedback:      feedback.Feedback,
		AverageRating: feedback.AverageRating,
		Ratings:       ratings,
		CreatedAt:     feedback.CreatedAt,
	}
}
