package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

func interviewModels() []interface{} {
	return []interface{}{
		&models.Designation{}, &models.Skill{}, &models.InterviewType{},
		&models.JobApplicant{}, &models.InterviewRound{}, &models.RoundSkill{}, &models.RoundMember{},
		&models.Interview{}, &models.InterviewDetail{},
	}
}

func seedInterview(t *testing.T, db *gorm.DB, scheduledOn time.Time, status string) models.Interview {
	t.Helper()

	applicant := models.JobApplicant{Name: "Ada", Email: scheduledOn.Format("20060102150405") + status + "@example.com"}
	require.NoError(t, db.Create(&applicant).Error)

	interviewType := models.InterviewType{Name: "Technical " + status + scheduledOn.Format("20060102150405")}
	require.NoError(t, db.Create(&interviewType).Error)

	round := models.InterviewRound{Name: "Round " + status + scheduledOn.Format("20060102150405"), InterviewTypeID: interviewType.ID}
	require.NoError(t, db.Create(&round).Error)

	interview := models.Interview{
		JobApplicantID:   applicant.ID,
		InterviewRoundID: round.ID,
		ScheduledOn:      datatypes.Date(scheduledOn),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           status,
		Details:          []models.InterviewDetail{{Interviewer: "panel@example.com"}},
	}
	require.NoError(t, db.Create(&interview).Error)
	return interview
}

func TestInterviewRepositoryExistsForRound(t *testing.T) {
	db := setupTestDB(t, interviewModels()...)
	repo := NewInterviewRepository(db)

	interview := seedInterview(t, db, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), models.InterviewStatusPending)

	exists, err := repo.ExistsForRound(context.Background(), interview.JobApplicantID, interview.InterviewRoundID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsForRound(context.Background(), interview.JobApplicantID, interview.InterviewRoundID+1)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestInterviewRepositoryListDueForReminder(t *testing.T) {
	db := setupTestDB(t, interviewModels()...)
	repo := NewInterviewRepository(db)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	due := seedInterview(t, db, today, models.InterviewStatusPending)
	seedInterview(t, db, today.AddDate(0, 0, 5), models.InterviewStatusPending)
	seedInterview(t, db, today, models.InterviewStatusCleared)

	reminded := seedInterview(t, db, today.AddDate(0, 0, 1), models.InterviewStatusPending)
	require.NoError(t, repo.MarkReminderSent(context.Background(), []uint{reminded.ID}))

	candidates, err := repo.ListDueForReminder(context.Background(), today, today.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, due.ID, candidates[0].ID)
	require.NotEmpty(t, candidates[0].Details, "panel must be preloaded for the reminder email")
}

func TestInterviewRepositoryListAwaitingFeedback(t *testing.T) {
	db := setupTestDB(t, interviewModels()...)
	repo := NewInterviewRepository(db)

	yesterday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	waiting := seedInterview(t, db, yesterday, models.InterviewStatusUnderReview)
	seedInterview(t, db, yesterday.AddDate(0, 0, 7), models.InterviewStatusUnderReview)
	seedInterview(t, db, yesterday, models.InterviewStatusPending)

	candidates, err := repo.ListAwaitingFeedback(context.Background(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, waiting.ID, candidates[0].ID)
}

func TestInterviewRepositoryUpdateDetailRating(t *testing.T) {
	db := setupTestDB(t, interviewModels()...)
	repo := NewInterviewRepository(db)

	interview := seedInterview(t, db, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), models.InterviewStatusPending)

	require.NoError(t, repo.UpdateDetailRating(context.Background(), interview.ID, "panel@example.com", 0.75, "strong"))

	loaded, err := repo.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Details, 1)
	require.InDelta(t, 0.75, loaded.Details[0].AverageRating, 0.0001)
	require.Equal(t, "strong", loaded.Details[0].Comments)

	err = repo.UpdateDetailRating(context.Background(), interview.ID, "stranger@example.com", 0.5, "")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInterviewRepositoryListFiltersByApplicantAndStatus(t *testing.T) {
	db := setupTestDB(t, interviewModels()...)
	repo := NewInterviewRepository(db)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	pending := seedInterview(t, db, today, models.InterviewStatusPending)
	seedInterview(t, db, today, models.InterviewStatusCleared)

	matched, total, err := repo.List(context.Background(), InterviewFilter{Status: models.InterviewStatusPending})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, matched, 1)
	require.Equal(t, pending.ID, matched[0].ID)

	byApplicant, err := repo.ListByApplicant(context.Background(), pending.JobApplicantID)
	require.NoError(t, err)
	require.Len(t, byApplicant, 1)
}
