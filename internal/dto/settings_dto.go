package dto

import (
	"time"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// SettingsUpdateRequest toggles the reminder sweeps and their templates.
type SettingsUpdateRequest struct {
	SendInterviewReminder     *bool   `json:"send_interview_reminder"`
	InterviewReminderTemplate *string `json:"interview_reminder_template" validate:"omitempty,min=2"`
	RemindBefore              *string `json:"remind_before" validate:"omitempty"`
	SendFeedbackReminder      *bool   `json:"send_feedback_reminder"`
	FeedbackReminderTemplate  *string `json:"feedback_reminder_template" validate:"omitempty,min=2"`
	SenderEmail               *string `json:"sender_email" validate:"omitempty,email"`
}

// SettingsResponse is the serialized HR settings singleton.
type SettingsResponse struct {
	SendInterviewReminder     bool      `json:"send_interview_reminder"`
	InterviewReminderTemplate string    `json:"interview_reminder_template"`
	RemindBefore              string    `json:"remind_before"`
	SendFeedbackReminder      bool      `json:"send_feedback_reminder"`
	FeedbackReminderTemplate  string    `json:"feedback_reminder_template"`
	SenderEmail               string    `json:"sender_email,omitempty"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// NewSettingsResponse converts the settings model into a DTO.
func NewSettingsResponse(settings models.HRSettings) SettingsResponse {
	return SettingsResponse{
		SendInterviewReminder:     settings.SendInterviewReminder,
		InterviewReminderTemplate: settings.InterviewReminderTemplate,
		RemindBefore:              settings.ReminderWindow().String(),
		SendFeedbackReminder:      settings.SendFeedbackReminder,
		FeedbackReminderTemplate:  settings.FeedbackReminderTemplate,
		SenderEmail:               settings.SenderEmail,
		UpdatedAt:                 settings.UpdatedAt,
	}
}
