package models

import "time"

// Default reminder template names seeded at startup.
const (
	TemplateInterviewReminder = "Interview Reminder"
	TemplateFeedbackReminder  = "Interview Feedback Reminder"
)

// HRSettings is the singleton row gating the reminder sweeps. Both sweeps
// are no-ops while their flag is off.
type HRSettings struct {
	ID                        uint          `gorm:"primaryKey" json:"id"`
	SendInterviewReminder     bool          `gorm:"not null;default:false" json:"send_interview_reminder"`
	InterviewReminderTemplate string        `gorm:"size:140" json:"interview_reminder_template"`
	RemindBefore              time.Duration `gorm:"not null;default:0" json:"remind_before"`
	SendFeedbackReminder      bool          `gorm:"not null;default:false" json:"send_feedback_reminder"`
	FeedbackReminderTemplate  string        `gorm:"size:140" json:"feedback_reminder_template"`
	SenderEmail               string        `gorm:"size:255" json:"sender_email"`
	UpdatedAt                 time.Time     `json:"updated_at"`
}

// ReminderWindow returns the look-ahead used by the interview reminder sweep.
func (s HRSettings) ReminderWindow() time.Duration {
	if s.RemindBefore <= 0 {
		return 15 * time.Minute
	}
	return s.RemindBefore
}
