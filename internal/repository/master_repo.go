package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// MasterRepository creates-on-demand the reference records interviews hang
// off of: skills, designations and interview types.
type MasterRepository interface {
	EnsureSkill(ctx context.Context, name string) (models.Skill, error)
	EnsureSkills(ctx context.Context, names []string) ([]models.Skill, error)
	EnsureDesignation(ctx context.Context, name string) (models.Designation, error)
	EnsureInterviewType(ctx context.Context, name, description string) (models.InterviewType, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
}

type masterRepository struct {
	db *gorm.DB
}

// NewMasterRepository instantiates a GORM-backed master-record repository.
func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{db: db}
}

func (r *masterRepository) EnsureSkill(ctx context.Context, name string) (models.Skill, error) {
	skill := models.Skill{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).
		Where("name = ?", skill.Name).
		FirstOrCreate(&skill).Error
	if err != nil {
		return models.Skill{}, err
	}
	return skill, nil
}

func (r *masterRepository) EnsureSkills(ctx context.Context, names []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		skill, err := r.EnsureSkill(ctx, name)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func (r *masterRepository) EnsureDesignation(ctx context.Context, name string) (models.Designation, error) {
	designation := models.Designation{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).
		Where("name = ?", designation.Name).
		FirstOrCreate(&designation).Error
	if err != nil {
		return models.Designation{}, err
	}
	return designation, nil
}

func (r *masterRepository) EnsureInterviewType(ctx context.Context, name, description string) (models.InterviewType, error) {
	interviewType := models.InterviewType{Name: strings.TrimSpace(name), Description: description}
	err := r.db.WithContext(ctx).
		Where("name = ?", interviewType.Name).
		FirstOrCreate(&interviewType).Error
	if err != nil {
		return models.InterviewType{}, err
	}
	return interviewType, nil
}

func (r *masterRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}
