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

func feedbackFixtures(t *testing.T) (*memoryInterviewRepo, *memoryFeedbackRepo, FeedbackService, models.Interview) {
	t.Helper()

	interviews := &memoryInterviewRepo{}
	feedback := &memoryFeedbackRepo{}
	svc := NewFeedbackService(feedback, interviews, &memoryMasterRepo{}, nil, validator.New(), testLogger())

	interview := models.Interview{
		JobApplicantID:   1,
		InterviewRoundID: 1,
		ScheduledOn:      datatypes.Date(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)),
		FromTime:         "10:00:00",
		ToTime:           "11:00:00",
		Status:           models.InterviewStatusPending,
		Details: []models.InterviewDetail{
			{Interviewer: "panel@example.com"},
			{Interviewer: "second@example.com"},
		},
	}
	require.NoError(t, interviews.Create(context.Background(), &interview))

	return interviews, feedback, svc, interview
}

func TestFeedbackServiceSubmit(t *testing.T) {
	interviews, _, svc, interview := feedbackFixtures(t)

	result, err := svc.Submit(context.Background(), interview.ID, dto.FeedbackRequest{
		Interviewer: "panel@example.com",
		Result:      models.FeedbackResultCleared,
		Feedback:    "Strong problem solving",
		Ratings:     map[string]float64{"Go": 0.8, "SQL": 0.6},
	})
	require.NoError(t, err)
	require.InDelta(t, 0.7, result.AverageRating, 0.0001)

	stored, err := interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusUnderReview, stored.Status)
	require.InDelta(t, 0.7, stored.AverageRating, 0.0001)
	require.InDelta(t, 0.7, stored.Details[0].AverageRating, 0.0001)
}

func TestFeedbackServiceSubmitAveragesAcrossPanel(t *testing.T) {
	interviews, _, svc, interview := feedbackFixtures(t)

	_, err := svc.Submit(context.Background(), interview.ID, dto.FeedbackRequest{
		Interviewer: "panel@example.com",
		Result:      models.FeedbackResultCleared,
		Ratings:     map[string]float64{"Go": 0.8},
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), interview.ID, dto.FeedbackRequest{
		Interviewer: "second@example.com",
		Result:      models.FeedbackResultRejected,
		Ratings:     map[string]float64{"Go": 0.4},
	})
	require.NoError(t, err)

	stored, err := interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.InDelta(t, 0.6, stored.AverageRating, 0.0001)
}

func TestFeedbackServiceRejectsDuplicate(t *testing.T) {
	_, _, svc, interview := feedbackFixtures(t)

	payload := dto.FeedbackRequest{
		Interviewer: "panel@example.com",
		Result:      models.FeedbackResultCleared,
		Ratings:     map[string]float64{"Go": 0.9},
	}

	_, err := svc.Submit(context.Background(), interview.ID, payload)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), interview.ID, payload)
	require.ErrorIs(t, err, ErrDuplicateFeedback)
}

func TestFeedbackServiceRejectsOutsider(t *testing.T) {
	_, _, svc, interview := feedbackFixtures(t)

	_, err := svc.Submit(context.Background(), interview.ID, dto.FeedbackRequest{
		Interviewer: "outsider@example.com",
		Result:      models.FeedbackResultCleared,
		Ratings:     map[string]float64{"Go": 0.9},
	})
	require.ErrorIs(t, err, ErrNotPanelMember)
}
