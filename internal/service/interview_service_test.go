package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
)

func interviewFixtures(t *testing.T) (*memoryInterviewRepo, *memoryRoundRepo, *memoryApplicantRepo, *memoryEmailRepo, InterviewService) {
	t.Helper()

	interviews := &memoryInterviewRepo{}
	rounds := &memoryRoundRepo{}
	applicants := &memoryApplicantRepo{}
	emails := &memoryEmailRepo{}
	mailer := NewMailService(emails, nil, nil, testLogger())

	svc := NewInterviewService(interviews, rounds, applicants, mailer, nil, validator.New(), testLogger())
	return interviews, rounds, applicants, emails, svc
}

func seedRoundAndApplicant(t *testing.T, rounds *memoryRoundRepo, applicants *memoryApplicantRepo, designationID *uint) (models.InterviewRound, models.JobApplicant) {
	t.Helper()

	round := models.InterviewRound{
		Name:          "Technical Round",
		DesignationID: designationID,
		InterviewType: models.InterviewType{Name: "Technical"},
		Interviewers:  []models.RoundMember{{Email: "panel@example.com"}},
	}
	require.NoError(t, rounds.Create(context.Background(), &round))

	applicant := models.JobApplicant{
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		Status:        models.ApplicantStatusOpen,
		DesignationID: designationID,
	}
	require.NoError(t, applicants.Create(context.Background(), &applicant))

	return round, applicant
}

func TestInterviewServiceSchedule(t *testing.T) {
	_, rounds, applicants, _, svc := interviewFixtures(t)
	round, applicant := seedRoundAndApplicant(t, rounds, applicants, nil)

	result, err := svc.Schedule(context.Background(), dto.InterviewScheduleRequest{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusPending, result.Status)
	require.Equal(t, "2026-09-01", result.ScheduledOn)
	require.Len(t, result.Interviewers, 1)
	require.Equal(t, "panel@example.com", result.Interviewers[0].Interviewer)
}

func TestInterviewServiceScheduleRejectsDuplicateRound(t *testing.T) {
	_, rounds, applicants, _, svc := interviewFixtures(t)
	round, applicant := seedRoundAndApplicant(t, rounds, applicants, nil)

	payload := dto.InterviewScheduleRequest{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
	}

	_, err := svc.Schedule(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Schedule(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateInterview)
}

func TestInterviewServiceScheduleRejectsDesignationMismatch(t *testing.T) {
	_, rounds, applicants, _, svc := interviewFixtures(t)

	roundDesignation := uint(7)
	round, _ := seedRoundAndApplicant(t, rounds, applicants, &roundDesignation)

	other := models.JobApplicant{Name: "Grace", Email: "grace@example.com"}
	require.NoError(t, applicants.Create(context.Background(), &other))

	_, err := svc.Schedule(context.Background(), dto.InterviewScheduleRequest{
		JobApplicantID:   other.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
	})
	require.ErrorIs(t, err, ErrDesignationMismatch)
}

func TestInterviewServiceScheduleRejectsInvalidWindow(t *testing.T) {
	_, rounds, applicants, _, svc := interviewFixtures(t)
	round, applicant := seedRoundAndApplicant(t, rounds, applicants, nil)

	_, err := svc.Schedule(context.Background(), dto.InterviewScheduleRequest{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "11:00:00",
		ToTime:           "10:00:00",
	})
	require.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestInterviewServiceRescheduleNotifies(t *testing.T) {
	interviews, rounds, applicants, emails, svc := interviewFixtures(t)
	round, applicant := seedRoundAndApplicant(t, rounds, applicants, nil)

	scheduled, err := svc.Schedule(context.Background(), dto.InterviewScheduleRequest{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
	})
	require.NoError(t, err)

	// Simulate a reminder already delivered for the old slot.
	stored, err := interviews.GetByID(context.Background(), scheduled.ID)
	require.NoError(t, err)
	stored.ReminderSent = true
	stored.JobApplicant = applicant
	require.NoError(t, interviews.Update(context.Background(), &stored))

	result, err := svc.Reschedule(context.Background(), scheduled.ID, dto.InterviewRescheduleRequest{
		ScheduledOn: "2026-09-03",
		FromTime:    "14:00:00",
		ToTime:      "15:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, "2026-09-03", result.ScheduledOn)
	require.False(t, result.ReminderSent, "reschedule should re-arm the reminder")

	require.Len(t, emails.queue, 1)
	notification := emails.queue[0]
	require.Contains(t, notification.Message, "rescheduled from 2026-09-01 (10:00:00 - 11:00:00)")
	require.Contains(t, notification.Message, "to 2026-09-03 (14:00:00 - 15:00:00)")
	require.Contains(t, notification.Recipients, "ada@example.com")
	require.Contains(t, notification.Recipients, "panel@example.com")
}

func TestInterviewServiceRescheduleRejectsClosed(t *testing.T) {
	interviews, _, _, _, svc := interviewFixtures(t)

	closed := models.Interview{
		JobApplicantID:   1,
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           models.InterviewStatusCleared,
	}
	require.NoError(t, interviews.Create(context.Background(), &closed))

	_, err := svc.Reschedule(context.Background(), closed.ID, dto.InterviewRescheduleRequest{
		ScheduledOn: "2026-09-05",
		FromTime:    "10:00:00",
		ToTime:      "11:00:00",
	})
	require.ErrorIs(t, err, ErrInterviewClosed)
}

func TestInterviewServiceUpdateStatus(t *testing.T) {
	_, rounds, applicants, _, svc := interviewFixtures(t)
	round, applicant := seedRoundAndApplicant(t, rounds, applicants, nil)

	scheduled, err := svc.Schedule(context.Background(), dto.InterviewScheduleRequest{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      "2026-09-01",
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
	})
	require.NoError(t, err)

	result, err := svc.UpdateStatus(context.Background(), scheduled.ID, dto.InterviewStatusRequest{Status: models.InterviewStatusCleared})
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCleared, result.Status)
}
