package dto

import (
	"strings"
	"time"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// EmailQueueResponse is one outbound message as exposed to admins.
type EmailQueueResponse struct {
	MessageID     string     `json:"message_id"`
	Recipients    []string   `json:"recipients"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	ReferenceType string     `json:"reference_type,omitempty"`
	ReferenceName string     `json:"reference_name,omitempty"`
	Status        string     `json:"status"`
	Error         string     `json:"error,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewEmailQueueResponse converts a queue row into a DTO.
func NewEmailQueueResponse(item models.EmailQueueItem) EmailQueueResponse {
	recipients := make([]string, 0)
	for _, recipient := range strings.Split(item.Recipients, ",") {
		if trimmed := strings.TrimSpace(recipient); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}

	return EmailQueueResponse{
		MessageID:     item.MessageID,
		Recipients:    recipients,
		Subject:       item.Subject,
		Message:       item.Message,
		ReferenceType: item.ReferenceType,
		ReferenceName: item.ReferenceName,
		Status:        item.Status,
		Error:         item.Error,
		SentAt:        item.SentAt,
		CreatedAt:     item.CreatedAt,
	}
}

// NewEmailQueueResponseSlice converts queue rows into DTOs.
func NewEmailQueueResponseSlice(items []models.EmailQueueItem) []EmailQueueResponse {
	responses := make([]EmailQueueResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewEmailQueueResponse(item))
	}
	return responses
}
