package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

var (
	// ErrInterviewNotFound indicates the requested interview does not exist.
	ErrInterviewNotFound = errors.New("interview not found")
	// ErrApplicantNotFound indicates the referenced applicant does not exist.
	ErrApplicantNotFound = errors.New("job applicant not found")
	// ErrDuplicateInterview indicates the applicant already has a session for
	// this round.
	ErrDuplicateInterview = errors.New("an interview for this round is already scheduled for the applicant")
	// ErrDesignationMismatch indicates the round targets a different
	// designation than the applicant applied for.
	ErrDesignationMismatch = errors.New("interview round designation does not match the applicant's designation")
	// ErrInvalidTimeWindow indicates from_time is not before to_time.
	ErrInvalidTimeWindow = errors.New("interview start time must be before end time")
	// ErrInterviewClosed indicates the session already reached a terminal
	// status and cannot be rescheduled.
	ErrInterviewClosed = errors.New("interview is already closed")
)

const dateLayout = "2006-01-02"

// InterviewService exposes interview scheduling use cases.
type InterviewService interface {
	Schedule(ctx context.Context, payload dto.InterviewScheduleRequest) (dto.InterviewResponse, error)
	Get(ctx context.Context, id uint) (dto.InterviewResponse, error)
	List(ctx context.Context, payload dto.InterviewListRequest) (dto.InterviewListResponse, error)
	Reschedule(ctx context.Context, id uint, payload dto.InterviewRescheduleRequest) (dto.InterviewResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.InterviewStatusRequest) (dto.InterviewResponse, error)
}

type interviewService struct {
	interviews repository.InterviewRepository
	rounds     repository.InterviewRoundRepository
	applicants repository.ApplicantRepository
	mailer     MailService
	feed       *EventFeed
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewInterviewService builds a new interview service.
func NewInterviewService(
	interviews repository.InterviewRepository,
	rounds repository.InterviewRoundRepository,
	applicants repository.ApplicantRepository,
	mailer MailService,
	feed *EventFeed,
	validate *validator.Validate,
	logger zerolog.Logger,
) InterviewService {
	return &interviewService{
		interviews: interviews,
		rounds:     rounds,
		applicants: applicants,
		mailer:     mailer,
		feed:       feed,
		validator:  validate,
		logger:     logger.With().Str("component", "interview_service").Logger(),
		now:        time.Now,
	}
}

func (s *interviewService) Schedule(ctx context.Context, payload dto.InterviewScheduleRequest) (dto.InterviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}
	if payload.FromTime >= payload.ToTime {
		return dto.InterviewResponse{}, ErrInvalidTimeWindow
	}

	applicant, err := s.applicants.GetByID(ctx, payload.JobApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrApplicantNotFound
		}
		return dto.InterviewResponse{}, err
	}

	round, err := s.rounds.GetByID(ctx, payload.InterviewRoundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrRoundNotFound
		}
		return dto.InterviewResponse{}, err
	}

	if round.DesignationID != nil {
		if applicant.DesignationID == nil || *applicant.DesignationID != *round.DesignationID {
			return dto.InterviewResponse{}, ErrDesignationMismatch
		}
	}

	duplicate, err := s.interviews.ExistsForRound(ctx, applicant.ID, round.ID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if duplicate {
		return dto.InterviewResponse{}, ErrDuplicateInterview
	}

	scheduledOn, err := time.Parse(dateLayout, payload.ScheduledOn)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	interview := models.Interview{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      datatypes.Date(scheduledOn),
		FromTime:         payload.FromTime,
		ToTime:           payload.ToTime,
		Status:           models.InterviewStatusPending,
	}

	panel := payload.Interviewers
	if len(panel) == 0 {
		for _, member := range round.Interviewers {
			panel = append(panel, member.Email)
		}
	}
	for _, interviewer := range panel {
		interview.Details = append(interview.Details, models.InterviewDetail{
			Interviewer: strings.ToLower(strings.TrimSpace(interviewer)),
		})
	}

	if err := s.interviews.Create(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}
	interview.JobApplicant = applicant
	interview.InterviewRound = round

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Uint("applicant_id", applicant.ID).
		Str("round", round.Name).
		Msg("interview scheduled")

	if s.feed != nil {
		s.feed.Publish(ctx, Event{
			Type:          EventInterviewScheduled,
			ReferenceType: "Interview",
			ReferenceName: interview.Name(),
			Message:       fmt.Sprintf("%s scheduled for %s on %s", round.Name, applicant.Name, payload.ScheduledOn),
		})
	}

	return dto.NewInterviewResponse(interview), nil
}

func (s *interviewService) Get(ctx context.Context, id uint) (dto.InterviewResponse, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewResponse{}, err
	}
	return dto.NewInterviewResponse(interview), nil
}

func (s *interviewService) List(ctx context.Context, payload dto.InterviewListRequest) (dto.InterviewListResponse, error) {
	pageSize := payload.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	interviews, total, err := s.interviews.List(ctx, repository.InterviewFilter{
		ApplicantID: payload.ApplicantID,
		Status:      payload.Status,
		From:        payload.From,
		To:          payload.To,
		Page:        payload.Page,
		PageSize:    pageSize,
	})
	if err != nil {
		return dto.InterviewListResponse{}, err
	}

	return dto.InterviewListResponse{
		Items:      dto.NewInterviewResponseSlice(interviews),
		Pagination: dto.NewPaginationMeta(payload.Page, pageSize, total),
	}, nil
}

// Reschedule moves the session to a new slot and notifies the applicant and
// the panel with the previous slot included in the message.
func (s *interviewService) Reschedule(ctx context.Context, id uint, payload dto.InterviewRescheduleRequest) (dto.InterviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}
	if payload.FromTime >= payload.ToTime {
		return dto.InterviewResponse{}, ErrInvalidTimeWindow
	}

	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewResponse{}, err
	}
	if interview.IsClosed() {
		return dto.InterviewResponse{}, ErrInterviewClosed
	}

	previousDate := time.Time(interview.ScheduledOn).Format(dateLayout)
	previousFrom := interview.FromTime
	previousTo := interview.ToTime

	scheduledOn, err := time.Parse(dateLayout, payload.ScheduledOn)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	interview.ScheduledOn = datatypes.Date(scheduledOn)
	interview.FromTime = payload.FromTime
	interview.ToTime = payload.ToTime
	interview.ReminderSent = false

	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Str("previous_schedule", previousDate).
		Str("new_schedule", payload.ScheduledOn).
		Msg("interview rescheduled")

	s.notifyReschedule(ctx, interview, previousDate, previousFrom, previousTo)

	return dto.NewInterviewResponse(interview), nil
}

func (s *interviewService) UpdateStatus(ctx context.Context, id uint, payload dto.InterviewStatusRequest) (dto.InterviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}

	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewResponse{}, err
	}

	interview.Status = payload.Status
	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Str("status", interview.Status).
		Msg("interview status updated")

	return dto.NewInterviewResponse(interview), nil
}

func (s *interviewService) notifyReschedule(ctx context.Context, interview models.Interview, previousDate, previousFrom, previousTo string) {
	recipients := append([]string{interview.JobApplicant.Email}, interview.PanelEmails()...)

	body := fmt.Sprintf(
		"Your Interview session is rescheduled from %s (%s - %s) to %s (%s - %s)",
		previousDate, previousFrom, previousTo,
		time.Time(interview.ScheduledOn).Format(dateLayout), interview.FromTime, interview.ToTime,
	)

	if s.mailer != nil {
		err := s.mailer.EnqueueRaw(ctx, RawMailMessage{
			Subject:       "Interview: Rescheduled",
			Body:          body,
			Recipients:    recipients,
			ReferenceType: "Interview",
			ReferenceName: interview.Name(),
		})
		if err != nil {
			s.logger.Warn().Err(err).Uint("interview_id", interview.ID).Msg("failed to queue reschedule notification")
		}
	}

	if s.feed != nil {
		s.feed.Publish(ctx, Event{
			Type:          EventInterviewRescheduled,
			ReferenceType: "Interview",
			ReferenceName: interview.Name(),
			Message:       body,
		})
	}
}
