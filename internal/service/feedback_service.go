package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

var (
	// ErrDuplicateFeedback indicates the interviewer already submitted
	// feedback for this session.
	ErrDuplicateFeedback = errors.New("feedback already submitted for this interview")
	// ErrNotPanelMember indicates the submitter is not assigned to the session.
	ErrNotPanelMember = errors.New("interviewer is not on the panel for this interview")
)

// FeedbackService records interviewer assessments and keeps the interview's
// denormalized ratings in sync.
type FeedbackService interface {
	Submit(ctx context.Context, interviewID uint, payload dto.FeedbackRequest) (dto.FeedbackResponse, error)
	ListByInterview(ctx context.Context, interviewID uint) ([]dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedback   repository.FeedbackRepository
	interviews repository.InterviewRepository
	masters    repository.MasterRepository
	feed       *EventFeed
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewFeedbackService builds a new feedback service.
func NewFeedbackService(
	feedback repository.FeedbackRepository,
	interviews repository.InterviewRepository,
	masters repository.MasterRepository,
	feed *EventFeed,
	validate *validator.Validate,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackService{
		feedback:   feedback,
		interviews: interviews,
		masters:    masters,
		feed:       feed,
		validator:  validate,
		logger:     logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Submit(ctx context.Context, interviewID uint, payload dto.FeedbackRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrInterviewNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	interviewer := strings.ToLower(strings.TrimSpace(payload.Interviewer))
	if !onPanel(interview, interviewer) {
		return dto.FeedbackResponse{}, ErrNotPanelMember
	}

	duplicate, err := s.feedback.Exists(ctx, interview.ID, interviewer)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}
	if duplicate {
		return dto.FeedbackResponse{}, ErrDuplicateFeedback
	}

	doc := models.InterviewFeedback{
		InterviewID: interview.ID,
		Interviewer: interviewer,
		Result:      payload.Result,
		Feedback:    payload.Feedback,
	}
	for skillName, rating := range payload.Ratings {
		skill, err := s.masters.EnsureSkill(ctx, skillName)
		if err != nil {
			return dto.FeedbackResponse{}, err
		}
		doc.Assessments = append(doc.Assessments, models.SkillAssessment{
			SkillID: skill.ID,
			Skill:   skill,
			Rating:  rating,
		})
	}
	doc.AverageRating = doc.MeanRating()

	if err := s.feedback.Create(ctx, &doc); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if err := s.interviews.UpdateDetailRating(ctx, interview.ID, interviewer, doc.AverageRating, payload.Feedback); err != nil {
		s.logger.Warn().Err(err).Uint("interview_id", interview.ID).Str("interviewer", interviewer).Msg("failed to update panel rating")
	}

	if err := s.refreshInterviewRating(ctx, &interview); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Str("interviewer", interviewer).
		Float64("average_rating", doc.AverageRating).
		Msg("interview feedback submitted")

	if s.feed != nil {
		s.feed.Publish(ctx, Event{
			Type:          EventFeedbackSubmitted,
			ReferenceType: "Interview Feedback",
			ReferenceName: interview.Name(),
			Message:       fmt.Sprintf("%s submitted feedback for %s", interviewer, interview.Name()),
		})
	}

	return dto.NewFeedbackResponse(doc), nil
}

func (s *feedbackService) ListByInterview(ctx context.Context, interviewID uint) ([]dto.FeedbackResponse, error) {
	documents, err := s.feedback.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FeedbackResponse, 0, len(documents))
	for _, doc := range documents {
		responses = append(responses, dto.NewFeedbackResponse(doc))
	}
	return responses, nil
}

// refreshInterviewRating recomputes the session average from all submitted
// feedback and moves a pending session under review.
func (s *feedbackService) refreshInterviewRating(ctx context.Context, interview *models.Interview) error {
	documents, err := s.feedback.ListByInterview(ctx, interview.ID)
	if err != nil {
		return err
	}

	var total float64
	for _, doc := range documents {
		total += doc.AverageRating
	}
	if len(documents) > 0 {
		interview.AverageRating = total / float64(len(documents))
	}

	if interview.Status == models.InterviewStatusPending {
		interview.Status = models.InterviewStatusUnderReview
	}

	return s.interviews.Update(ctx, interview)
}

func onPanel(interview models.Interview, interviewer string) bool {
	for _, detail := range interview.Details {
		if strings.EqualFold(detail.Interviewer, interviewer) {
			return true
		}
	}
	return false
}
