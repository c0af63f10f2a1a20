package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// RoundFilter describes search & pagination options for interview rounds.
type RoundFilter struct {
	Search        string
	DesignationID *uint
	Page          int
	PageSize      int
}

// InterviewRoundRepository defines persistence operations for rounds.
type InterviewRoundRepository interface {
	Create(ctx context.Context, round *models.InterviewRound) error
	Update(ctx context.Context, round *models.InterviewRound) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (models.InterviewRound, error)
	List(ctx context.Context, filter RoundFilter) ([]models.InterviewRound, int64, error)
	ExistsWithName(ctx context.Context, designationID *uint, name string, excludeID uint) (bool, error)
}

type interviewRoundRepository struct {
	db *gorm.DB
}

// NewInterviewRoundRepository instantiates a GORM-backed round repository.
func NewInterviewRoundRepository(db *gorm.DB) InterviewRoundRepository {
	return &interviewRoundRepository{db: db}
}

func (r *interviewRoundRepository) Create(ctx context.Context, round *models.InterviewRound) error {
	return r.db.WithContext(ctx).Create(round).Error
}

// Update replaces the round's skill and interviewer child rows wholesale;
// a plain association save only upserts and would leave removed rows behind.
func (r *interviewRoundRepository) Update(ctx context.Context, round *models.InterviewRound) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_round_id = ?", round.ID).Delete(&models.RoundSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_round_id = ?", round.ID).Delete(&models.RoundMember{}).Error; err != nil {
			return err
		}
		for i := range round.Skills {
			round.Skills[i].ID = 0
			round.Skills[i].InterviewRoundID = round.ID
		}
		for i := range round.Interviewers {
			round.Interviewers[i].ID = 0
			round.Interviewers[i].InterviewRoundID = round.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(round).Error
	})
}

func (r *interviewRoundRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.InterviewRound{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interviewRoundRepository) GetByID(ctx context.Context, id uint) (models.InterviewRound, error) {
	var round models.InterviewRound
	err := r.db.WithContext(ctx).
		Preload("Skills.Skill").
		Preload("Interviewers").
		Preload("InterviewType").
		Preload("Designation").
		First(&round, id).Error
	if err != nil {
		return models.InterviewRound{}, err
	}
	return round, nil
}

func (r *interviewRoundRepository) List(ctx context.Context, filter RoundFilter) ([]models.InterviewRound, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InterviewRound{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if filter.DesignationID != nil {
		query = query.Where("designation_id = ?", *filter.DesignationID)
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

	var rounds []models.InterviewRound
	err := query.
		Preload("Skills.Skill").
		Preload("Interviewers").
		Preload("InterviewType").
		Order("name ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, 0, err
	}

	return rounds, total, nil
}

func (r *interviewRoundRepository) ExistsWithName(ctx context.Context, designationID *uint, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.InterviewRound{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))

	if designationID != nil {
		query = query.Where("designation_id = ?", *designationID)
	} else {
		query = query.Where("designation_id IS NULL")
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
