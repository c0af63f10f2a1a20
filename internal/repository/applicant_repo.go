package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// ApplicantFilter describes search & pagination options for applicants.
type ApplicantFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// ApplicantRepository defines persistence operations for job applicants.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *models.JobApplicant) error
	Update(ctx context.Context, applicant *models.JobApplicant) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (models.JobApplicant, error)
	GetByEmail(ctx context.Context, email string) (models.JobApplicant, error)
	List(ctx context.Context, filter ApplicantFilter) ([]models.JobApplicant, int64, error)
}

type applicantRepository struct {
	db *gorm.DB
}

// NewApplicantRepository instantiates a GORM-backed applicant repository.
func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *models.JobApplicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) Update(ctx context.Context, applicant *models.JobApplicant) error {
	return r.db.WithContext(ctx).Save(applicant).Error
}

func (r *applicantRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.JobApplicant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicantRepository) GetByID(ctx context.Context, id uint) (models.JobApplicant, error) {
	var applicant models.JobApplicant
	if err := r.db.WithContext(ctx).Preload("Designation").First(&applicant, id).Error; err != nil {
		return models.JobApplicant{}, err
	}
	return applicant, nil
}

func (r *applicantRepository) GetByEmail(ctx context.Context, email string) (models.JobApplicant, error) {
	var applicant models.JobApplicant
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&applicant).Error
	if err != nil {
		return models.JobApplicant{}, err
	}
	return applicant, nil
}

func (r *applicantRepository) List(ctx context.Context, filter ApplicantFilter) ([]models.JobApplicant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JobApplicant{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var applicants []models.JobApplicant
	if err := query.Order("created_at DESC").Find(&applicants).Error; err != nil {
		return nil, 0, err
	}

	return applicants, total, nil
}
