package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// EmailQueueFilter narrows queue listings.
type EmailQueueFilter struct {
	ReferenceType string
	ReferenceName string
	Status        string
	MessageLike   string
	Limit         int
}

// EmailRepository persists templates and the outbound mail queue.
type EmailRepository interface {
	GetTemplate(ctx context.Context, name string) (models.EmailTemplate, error)
	TemplateExists(ctx context.Context, name string) (bool, error)
	UpsertTemplate(ctx context.Context, template *models.EmailTemplate) error
	Enqueue(ctx context.Context, item *models.EmailQueueItem) error
	MarkSent(ctx context.Context, messageID string, at time.Time) error
	MarkError(ctx context.Context, messageID, reason string) error
	ListQueue(ctx context.Context, filter EmailQueueFilter) ([]models.EmailQueueItem, error)
}

type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository instantiates a GORM-backed email repository.
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

func (r *emailRepository) GetTemplate(ctx context.Context, name string) (models.EmailTemplate, error) {
	var template models.EmailTemplate
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&template).Error; err != nil {
		return models.EmailTemplate{}, err
	}
	return template, nil
}

func (r *emailRepository) TemplateExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmailTemplate{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *emailRepository) UpsertTemplate(ctx context.Context, template *models.EmailTemplate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"subject", "body", "updated_at"}),
		}).
		Create(template).Error
}

func (r *emailRepository) Enqueue(ctx context.Context, item *models.EmailQueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *emailRepository) MarkSent(ctx context.Context, messageID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.EmailQueueItem{}).
		Where("message_id = ?", messageID).
		Updates(map[string]interface{}{"status": models.EmailStatusSent, "sent_at": at}).Error
}

func (r *emailRepository) MarkError(ctx context.Context, messageID, reason string) error {
	return r.db.WithContext(ctx).Model(&models.EmailQueueItem{}).
		Where("message_id = ?", messageID).
		Updates(map[string]interface{}{"status": models.EmailStatusError, "error": reason}).Error
}

func (r *emailRepository) ListQueue(ctx context.Context, filter EmailQueueFilter) ([]models.EmailQueueItem, error) {
	query := r.db.WithContext(ctx).Model(&models.EmailQueueItem{})

	if filter.ReferenceType != "" {
		query = query.Where("reference_type = ?", filter.ReferenceType)
	}
	if filter.ReferenceName != "" {
		query = query.Where("reference_name = ?", filter.ReferenceName)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MessageLike != "" {
		pattern := "%" + strings.TrimSpace(filter.MessageLike) + "%"
		query = query.Where("message LIKE ? OR subject LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []models.EmailQueueItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
