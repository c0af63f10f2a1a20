package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

func reminderFixtures(t *testing.T, now time.Time) (*memoryInterviewRepo, *memorySettingsRepo, *memoryEmailRepo, *reminderService) {
	t.Helper()

	interviews := &memoryInterviewRepo{}
	settings := &memorySettingsRepo{}
	emails := &memoryEmailRepo{
		templates: []models.EmailTemplate{
			{Name: models.TemplateInterviewReminder, Subject: "Reminder: {{.round}}", Body: "Interview {{.interview_name}} at {{.from_time}}"},
			{Name: models.TemplateFeedbackReminder, Subject: "Feedback pending", Body: "Feedback for {{.interview_name}} is pending"},
		},
	}
	mailer := NewMailService(emails, nil, nil, testLogger())

	svc := NewReminderService(interviews, settings, mailer, time.Minute, time.Hour, testLogger()).(*reminderService)
	svc.now = func() time.Time { return now }
	return interviews, settings, emails, svc
}

func TestInterviewReminderSweepDisabled(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 50, 0, 0, time.UTC)
	interviews, _, emails, svc := reminderFixtures(t, now)

	due := models.Interview{
		JobApplicantID:   1,
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           models.InterviewStatusPending,
		Details:          []models.InterviewDetail{{Interviewer: "panel@example.com"}},
	}
	require.NoError(t, interviews.Create(context.Background(), &due))

	sent, err := svc.SendInterviewReminders(context.Background())
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Empty(t, emails.queue)
}

func TestInterviewReminderSweepSendsOnce(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 50, 0, 0, time.UTC)
	interviews, settings, emails, svc := reminderFixtures(t, now)
	settings.settings.SendInterviewReminder = true

	due := models.Interview{
		JobApplicantID:   1,
		JobApplicant:     models.JobApplicant{Name: "Ada", Email: "ada@example.com"},
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           models.InterviewStatusPending,
		Details:          []models.InterviewDetail{{Interviewer: "panel@example.com"}},
	}
	require.NoError(t, interviews.Create(context.Background(), &due))

	farAway := models.Interview{
		JobApplicantID:   2,
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		FromTime:         "16:00:00",
		ToTime:           "17:00:00",
		Status:           models.InterviewStatusPending,
		Details:          []models.InterviewDetail{{Interviewer: "panel@example.com"}},
	}
	require.NoError(t, interviews.Create(context.Background(), &farAway))

	sent, err := svc.SendInterviewReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sent)
	require.Len(t, emails.queue, 1)
	require.Contains(t, emails.queue[0].Message, "HR-INT-00001")
	require.Contains(t, emails.queue[0].Recipients, "panel@example.com")
	require.Contains(t, emails.queue[0].Recipients, "ada@example.com")

	stored, err := interviews.GetByID(context.Background(), due.ID)
	require.NoError(t, err)
	require.True(t, stored.ReminderSent)

	// Second sweep finds nothing new.
	sent, err = svc.SendInterviewReminders(context.Background())
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Len(t, emails.queue, 1)
}

func TestFeedbackReminderSweep(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	interviews, settings, emails, svc := reminderFixtures(t, now)
	settings.settings.SendFeedbackReminder = true

	waiting := models.Interview{
		JobApplicantID:   1,
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           models.InterviewStatusUnderReview,
		Details: []models.InterviewDetail{
			{Interviewer: "done@example.com", AverageRating: 0.8, Comments: "solid"},
			{Interviewer: "pending@example.com"},
		},
	}
	require.NoError(t, interviews.Create(context.Background(), &waiting))

	sent, err := svc.SendFeedbackReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sent)
	require.Len(t, emails.queue, 1)
	require.Equal(t, "pending@example.com", emails.queue[0].Recipients)
}
