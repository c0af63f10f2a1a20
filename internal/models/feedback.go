package models

import "time"

// Feedback results.
const (
	FeedbackResultCleared  = "Cleared"
	FeedbackResultRejected = "Rejected"
)

// InterviewFeedback records one panel member's assessment of a session.
// A single feedback document exists per (interview, interviewer) pair.
type InterviewFeedback struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	InterviewID   uint              `gorm:"not null;uniqueIndex:uniq_feedback_interviewer" json:"interview_id"`
	Interview     Interview         `json:"-"`
	Interviewer   string            `gorm:"size:255;not null;uniqueIndex:uniq_feedback_interviewer" json:"interviewer"`
	Result        string            `gorm:"size:32;not null" json:"result"`
	Feedback      string            `gorm:"type:text" json:"feedback"`
	AverageRating float64           `gorm:"not null;default:0" json:"average_rating"`
	Assessments   []SkillAssessment `gorm:"constraint:OnDelete:CASCADE" json:"assessments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SkillAssessment scores one expected skill, normalized to 0..1.
type SkillAssessment struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	InterviewFeedbackID uint    `gorm:"not null;index" json:"interview_feedback_id"`
	SkillID             uint    `gorm:"not null" json:"skill_id"`
	Skill               Skill   `json:"skill,omitempty"`
	Rating              float64 `gorm:"not null" json:"rating"`
}

// MeanRating averages the skill assessments of this feedback.
func (f InterviewFeedback) MeanRating() float64 {
	if len(f.Assessments) == 0 {
		return 0
	}
	var total float64
	for _, assessment := range f.Assessments {
		total += assessment.Rating
	}
	return total / float64(len(f.Assessments))
}
