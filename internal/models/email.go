package models

import "time"

// Email queue item states.
const (
	EmailStatusQueued = "queued"
	EmailStatusSent   = "sent"
	EmailStatusError  = "error"
)

// EmailTemplate holds a reusable subject and Go text/template body.
type EmailTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:140;not null;uniqueIndex" json:"name"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailQueueItem is one outbound message awaiting (or past) delivery.
// Operations enqueue rows here; the delivery backend drains them, so a
// failed provider never fails the business operation that queued the mail.
type EmailQueueItem struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MessageID     string     `gorm:"size:64;not null;uniqueIndex" json:"message_id"`
	Recipients    string     `gorm:"type:text;not null" json:"recipients"`
	Subject       string     `gorm:"size:255;not null" json:"subject"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	ReferenceType string     `gorm:"size:64;index:idx_email_reference" json:"reference_type"`
	ReferenceName string     `gorm:"size:140;index:idx_email_reference" json:"reference_name"`
	Status        string     `gorm:"size:16;not null;default:queued;index" json:"status"`
	Error         string     `gorm:"type:text" json:"error,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
