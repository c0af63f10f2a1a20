package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Interview statuses.
const (
	InterviewStatusPending     = "Pending"
	InterviewStatusUnderReview = "Under Review"
	InterviewStatusCleared     = "Cleared"
	InterviewStatusRejected    = "Rejected"
)

// RatingScale is the number of stars ratings are rendered on. Ratings are
// stored normalized to 0..1 and scaled by this constant for display.
const RatingScale = 5

// TimeOfDayLayout is the wire format for the from/to time window.
const TimeOfDayLayout = "15:04:05"

// Interview is a scheduled session between an applicant and a panel of
// interviewers for one interview round.
type Interview struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	JobApplicantID   uint              `gorm:"not null;index" json:"job_applicant_id"`
	JobApplicant     JobApplicant      `json:"job_applicant,omitempty"`
	InterviewRoundID uint              `gorm:"not null;index" json:"interview_round_id"`
	InterviewRound   InterviewRound    `json:"interview_round,omitempty"`
	ScheduledOn      datatypes.Date    `gorm:"not null;index" json:"scheduled_on"`
	FromTime         string            `gorm:"size:8;not null" json:"from_time"`
	ToTime           string            `gorm:"size:8;not null" json:"to_time"`
	Status           string            `gorm:"size:32;not null;default:Pending;index" json:"status"`
	AverageRating    float64           `gorm:"not null;default:0" json:"average_rating"`
	ReminderSent     bool              `gorm:"not null;default:false" json:"reminder_sent"`
	Details          []InterviewDetail `gorm:"constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// InterviewDetail is a child row assigning one interviewer to the session
// and carrying that interviewer's denormalized rating once feedback lands.
type InterviewDetail struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	InterviewID   uint    `gorm:"not null;index" json:"interview_id"`
	Interviewer   string  `gorm:"size:255;not null" json:"interviewer"`
	AverageRating float64 `gorm:"not null;default:0" json:"average_rating"`
	Comments      string  `gorm:"type:text" json:"comments"`
}

// Name is the human-readable document identifier used in emails and the
// applicant summary.
func (i Interview) Name() string {
	return fmt.Sprintf("HR-INT-%05d", i.ID)
}

// StartsAt combines the scheduled date with the window start time.
func (i Interview) StartsAt() time.Time {
	return combineDateTime(time.Time(i.ScheduledOn), i.FromTime)
}

// EndsAt combines the scheduled date with the window end time.
func (i Interview) EndsAt() time.Time {
	return combineDateTime(time.Time(i.ScheduledOn), i.ToTime)
}

// IsClosed reports whether the interview reached a terminal status.
func (i Interview) IsClosed() bool {
	return i.Status == InterviewStatusCleared || i.Status == InterviewStatusRejected
}

// PanelEmails lists the interviewer addresses assigned to the session.
func (i Interview) PanelEmails() []string {
	emails := make([]string, 0, len(i.Details))
	for _, detail := range i.Details {
		if detail.Interviewer != "" {
			emails = append(emails, detail.Interviewer)
		}
	}
	return emails
}

func combineDateTime(date time.Time, timeOfDay string) time.Time {
	parsed, err := time.Parse(TimeOfDayLayout, timeOfDay)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)
}
