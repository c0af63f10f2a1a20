package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/observability"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

// ReminderService runs the periodic email sweeps. Both sweeps are gated on
// the HR settings singleton and are safe to trigger manually.
type ReminderService interface {
	Start(ctx context.Context)
	SendInterviewReminders(ctx context.Context) (int, error)
	SendFeedbackReminders(ctx context.Context) (int, error)
}

type reminderService struct {
	interviews repository.InterviewRepository
	settings   repository.SettingsRepository
	mailer     MailService
	logger     zerolog.Logger
	now        func() time.Time

	sweepInterval    time.Duration
	feedbackInterval time.Duration
}

// NewReminderService builds the reminder scheduler.
func NewReminderService(
	interviews repository.InterviewRepository,
	settings repository.SettingsRepository,
	mailer MailService,
	sweepInterval, feedbackInterval time.Duration,
	logger zerolog.Logger,
) ReminderService {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	if feedbackInterval <= 0 {
		feedbackInterval = 24 * time.Hour
	}
	return &reminderService{
		interviews:       interviews,
		settings:         settings,
		mailer:           mailer,
		logger:           logger.With().Str("component", "reminder_service").Logger(),
		now:              time.Now,
		sweepInterval:    sweepInterval,
		feedbackInterval: feedbackInterval,
	}
}

// Start launches both sweep loops until the context is cancelled.
func (s *reminderService) Start(ctx context.Context) {
	go s.loop(ctx, s.sweepInterval, "interview_reminder", s.SendInterviewReminders)
	go s.loop(ctx, s.feedbackInterval, "feedback_reminder", s.SendFeedbackReminders)
}

func (s *reminderService) loop(ctx context.Context, interval time.Duration, kind string, sweep func(context.Context) (int, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := sweep(ctx)
			if err != nil {
				s.logger.Error().Err(err).Str("sweep", kind).Msg("reminder sweep failed")
				observability.RemindersSwept().WithLabelValues(kind, "error").Inc()
				continue
			}
			if sent > 0 {
				s.logger.Info().Str("sweep", kind).Int("sent", sent).Msg("reminder sweep completed")
			}
		}
	}
}

// SendInterviewReminders mails the applicant and panel of every pending session starting
// inside the configured look-ahead window. Each session is reminded at most
// once; rescheduling resets the flag.
func (s *reminderService) SendInterviewReminders(ctx context.Context) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.SendInterviewReminder {
		observability.RemindersSwept().WithLabelValues("interview_reminder", "disabled").Inc()
		return 0, nil
	}

	now := s.now().UTC()
	windowEnd := now.Add(settings.ReminderWindow())

	candidates, err := s.interviews.ListDueForReminder(ctx, now, windowEnd)
	if err != nil {
		return 0, err
	}

	templateName := settings.InterviewReminderTemplate
	if templateName == "" {
		templateName = models.TemplateInterviewReminder
	}

	var reminded []uint
	for _, interview := range candidates {
		startsAt := interview.StartsAt()
		if startsAt.Before(now) || startsAt.After(windowEnd) {
			continue
		}

		recipients := interview.PanelEmails()
		if email := interview.JobApplicant.Email; email != "" {
			recipients = append(recipients, email)
		}
		if len(recipients) == 0 {
			continue
		}

		err := s.mailer.Enqueue(ctx, MailMessage{
			TemplateName: templateName,
			Recipients:   recipients,
			Data: map[string]interface{}{
				"interview_name": interview.Name(),
				"applicant":      interview.JobApplicant.Name,
				"round":          interview.InterviewRound.Name,
				"scheduled_on":   time.Time(interview.ScheduledOn).Format(dateLayout),
				"from_time":      interview.FromTime,
				"to_time":        interview.ToTime,
			},
			ReferenceType: "Interview",
			ReferenceName: interview.Name(),
		})
		if err != nil {
			s.logger.Warn().Err(err).Uint("interview_id", interview.ID).Msg("failed to queue interview reminder")
			continue
		}
		reminded = append(reminded, interview.ID)
	}

	if err := s.interviews.MarkReminderSent(ctx, reminded); err != nil {
		return len(reminded), err
	}

	observability.RemindersSwept().WithLabelValues("interview_reminder", "sent").Add(float64(len(reminded)))
	return len(reminded), nil
}

// SendFeedbackReminders nudges panel members who have not yet rated a
// session that is already under review and past its scheduled date.
func (s *reminderService) SendFeedbackReminders(ctx context.Context) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.SendFeedbackReminder {
		observability.RemindersSwept().WithLabelValues("feedback_reminder", "disabled").Inc()
		return 0, nil
	}

	candidates, err := s.interviews.ListAwaitingFeedback(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}

	templateName := settings.FeedbackReminderTemplate
	if templateName == "" {
		templateName = models.TemplateFeedbackReminder
	}

	sent := 0
	for _, interview := range candidates {
		var pending []string
		for _, detail := range interview.Details {
			if detail.AverageRating == 0 && detail.Comments == "" {
				pending = append(pending, detail.Interviewer)
			}
		}
		if len(pending) == 0 {
			continue
		}

		err := s.mailer.Enqueue(ctx, MailMessage{
			TemplateName: templateName,
			Recipients:   pending,
			Data: map[string]interface{}{
				"interview_name": interview.Name(),
				"applicant":      interview.JobApplicant.Name,
				"round":          interview.InterviewRound.Name,
				"scheduled_on":   time.Time(interview.ScheduledOn).Format(dateLayout),
			},
			ReferenceType: "Interview",
			ReferenceName: interview.Name(),
		})
		if err != nil {
			s.logger.Warn().Err(err).Uint("interview_id", interview.ID).Msg("failed to queue feedback reminder")
			continue
		}
		sent++
	}

	observability.RemindersSwept().WithLabelValues("feedback_reminder", "sent").Add(float64(sent))
	return sent, nil
}
