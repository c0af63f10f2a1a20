package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// InterviewFilter narrows interview listings.
type InterviewFilter struct {
	ApplicantID *uint
	Status      string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// InterviewRepository defines persistence operations for interviews.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	Update(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uint) (models.Interview, error)
	List(ctx context.Context, filter InterviewFilter) ([]models.Interview, int64, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]models.Interview, error)
	ExistsForRound(ctx context.Context, applicantID, roundID uint) (bool, error)
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Interview, error)
	ListAwaitingFeedback(ctx context.Context, onOrBefore time.Time) ([]models.Interview, error)
	MarkReminderSent(ctx context.Context, ids []uint) error
	UpdateDetailRating(ctx context.Context, interviewID uint, interviewer string, rating float64, comments string) error
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository instantiates a GORM-backed interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepository) Update(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Save(interview).Error
}

func (r *interviewRepository) GetByID(ctx context.Context, id uint) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("JobApplicant").
		Preload("InterviewRound").
		Preload("InterviewRound.Skills.Skill").
		First(&interview, id).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) List(ctx context.Context, filter InterviewFilter) ([]models.Interview, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Interview{})

	if filter.ApplicantID != nil {
		query = query.Where("job_applicant_id = ?", *filter.ApplicantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("scheduled_on >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		query = query.Where("scheduled_on <= ?", filter.To.Format("2006-01-02"))
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

	var interviews []models.Interview
	err := query.
		Preload("Details").
		Preload("InterviewRound").
		Order("scheduled_on ASC, from_time ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

func (r *interviewRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Preload("InterviewRound").
		Where("job_applicant_id = ?", applicantID).
		Order("scheduled_on ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) ExistsForRound(ctx context.Context, applicantID, roundID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("job_applicant_id = ? AND interview_round_id = ?", applicantID, roundID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListDueForReminder returns un-reminded pending interviews scheduled on a
// date inside [from, to]. The exact start-time check happens in the service
// since the time window lives in a separate column.
func (r *interviewRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("JobApplicant").
		Preload("InterviewRound").
		Where("status = ? AND reminder_sent = ?", models.InterviewStatusPending, false).
		Where("scheduled_on >= ? AND scheduled_on <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) ListAwaitingFeedback(ctx context.Context, onOrBefore time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("JobApplicant").
		Preload("InterviewRound").
		Where("status = ?", models.InterviewStatusUnderReview).
		Where("scheduled_on <= ?", onOrBefore.Format("2006-01-02")).
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) MarkReminderSent(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id IN ?", ids).
		Update("reminder_sent", true).Error
}

func (r *interviewRepository) UpdateDetailRating(ctx context.Context, interviewID uint, interviewer string, rating float64, comments string) error {
	result := r.db.WithContext(ctx).Model(&models.InterviewDetail{}).
		Where("interview_id = ? AND interviewer = ?", interviewID, interviewer).
		Updates(map[string]interface{}{"average_rating": rating, "comments": comments})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
