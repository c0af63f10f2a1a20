package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
)

func TestSettingsServiceSeedDefaultTemplates(t *testing.T) {
	emails := &memoryEmailRepo{}
	svc := NewSettingsService(&memorySettingsRepo{}, emails, validator.New(), testLogger())

	require.NoError(t, svc.SeedDefaultTemplates(context.Background()))
	require.Len(t, emails.templates, 2)

	reminder, err := emails.GetTemplate(context.Background(), models.TemplateInterviewReminder)
	require.NoError(t, err)
	require.NotEmpty(t, reminder.Subject)
	require.NotEmpty(t, reminder.Body)

	feedback, err := emails.GetTemplate(context.Background(), models.TemplateFeedbackReminder)
	require.NoError(t, err)
	require.NotEmpty(t, feedback.Body)
}

func TestSettingsServiceSeedPreservesEdits(t *testing.T) {
	emails := &memoryEmailRepo{
		templates: []models.EmailTemplate{
			{Name: models.TemplateInterviewReminder, Subject: "Edited", Body: "Edited body"},
		},
	}
	svc := NewSettingsService(&memorySettingsRepo{}, emails, validator.New(), testLogger())

	require.NoError(t, svc.SeedDefaultTemplates(context.Background()))

	edited, err := emails.GetTemplate(context.Background(), models.TemplateInterviewReminder)
	require.NoError(t, err)
	require.Equal(t, "Edited", edited.Subject)
}

func TestSettingsServiceUpdateToggles(t *testing.T) {
	settings := &memorySettingsRepo{}
	emails := &memoryEmailRepo{
		templates: []models.EmailTemplate{
			{Name: "Custom Reminder", Subject: "s", Body: "b"},
		},
	}
	svc := NewSettingsService(settings, emails, validator.New(), testLogger())

	enabled := true
	template := "Custom Reminder"
	window := "30m"
	result, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{
		SendInterviewReminder:     &enabled,
		InterviewReminderTemplate: &template,
		RemindBefore:              &window,
	})
	require.NoError(t, err)
	require.True(t, result.SendInterviewReminder)
	require.Equal(t, "Custom Reminder", result.InterviewReminderTemplate)
	require.Equal(t, "30m0s", result.RemindBefore)
}

func TestSettingsServiceUpdateRejectsUnknownTemplate(t *testing.T) {
	svc := NewSettingsService(&memorySettingsRepo{}, &memoryEmailRepo{}, validator.New(), testLogger())

	template := "Missing Template"
	_, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{
		InterviewReminderTemplate: &template,
	})
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSettingsServiceUpdateRejectsBadDuration(t *testing.T) {
	svc := NewSettingsService(&memorySettingsRepo{}, &memoryEmailRepo{}, validator.New(), testLogger())

	window := "tomorrow"
	_, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{RemindBefore: &window})
	require.Error(t, err)
}
