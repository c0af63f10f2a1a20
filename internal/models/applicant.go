package models

import "time"

// Applicant lifecycle statuses.
const (
	ApplicantStatusOpen     = "open"
	ApplicantStatusHold     = "hold"
	ApplicantStatusAccepted = "accepted"
	ApplicantStatusRejected = "rejected"
)

// JobApplicant represents a candidate progressing through the hiring pipeline.
type JobApplicant struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"size:255;not null" json:"name"`
	Email         string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone         string      `gorm:"size:32" json:"phone"`
	Source        string      `gorm:"size:140" json:"source"`
	Status        string      `gorm:"size:32;not null;default:open" json:"status"`
	DesignationID *uint       `gorm:"index" json:"designation_id"`
	Designation   Designation `json:"designation,omitempty"`
	ResumeURL     string      `gorm:"size:512" json:"resume_url"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Interviews []Interview `json:"-"`
}
