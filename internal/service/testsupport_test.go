package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memoryRoundRepo struct {
	rounds []models.InterviewRound
	nextID uint
}

func (m *memoryRoundRepo) Create(ctx context.Context, round *models.InterviewRound) error {
	m.nextID++
	round.ID = m.nextID
	round.CreatedAt = time.Now()
	m.rounds = append(m.rounds, *round)
	return nil
}

func (m *memoryRoundRepo) Update(ctx context.Context, round *models.InterviewRound) error {
	for i := range m.rounds {
		if m.rounds[i].ID == round.ID {
			m.rounds[i] = *round
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryRoundRepo) Delete(ctx context.Context, id uint) error {
	for i := range m.rounds {
		if m.rounds[i].ID == id {
			m.rounds = append(m.rounds[:i], m.rounds[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryRoundRepo) GetByID(ctx context.Context, id uint) (models.InterviewRound, error) {
	for _, round := range m.rounds {
		if round.ID == id {
			return round, nil
		}
	}
	return models.InterviewRound{}, gorm.ErrRecordNotFound
}

func (m *memoryRoundRepo) List(ctx context.Context, filter repository.RoundFilter) ([]models.InterviewRound, int64, error) {
	return append([]models.InterviewRound(nil), m.rounds...), int64(len(m.rounds)), nil
}

func (m *memoryRoundRepo) ExistsWithName(ctx context.Context, designationID *uint, name string, excludeID uint) (bool, error) {
	for _, round := range m.rounds {
		if round.ID == excludeID {
			continue
		}
		if !strings.EqualFold(round.Name, strings.TrimSpace(name)) {
			continue
		}
		switch {
		case designationID == nil && round.DesignationID == nil:
			return true, nil
		case designationID != nil && round.DesignationID != nil && *designationID == *round.DesignationID:
			return true, nil
		}
	}
	return false, nil
}

type memoryMasterRepo struct {
	nextID uint
}

func (m *memoryMasterRepo) allocate() uint {
	m.nextID++
	return m.nextID
}

func (m *memoryMasterRepo) EnsureSkill(ctx context.Context, name string) (models.Skill, error) {
	return models.Skill{ID: m.allocate(), Name: strings.TrimSpace(name)}, nil
}

func (m *memoryMasterRepo) EnsureSkills(ctx context.Context, names []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		skill, err := m.EnsureSkill(ctx, name)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func (m *memoryMasterRepo) EnsureDesignation(ctx context.Context, name string) (models.Designation, error) {
	return models.Designation{ID: m.allocate(), Name: strings.TrimSpace(name)}, nil
}

func (m *memoryMasterRepo) EnsureInterviewType(ctx context.Context, name, description string) (models.InterviewType, error) {
	return models.InterviewType{ID: m.allocate(), Name: strings.TrimSpace(name), Description: description}, nil
}

func (m *memoryMasterRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return nil, nil
}

type memoryInterviewRepo struct {
	interviews []models.Interview
	nextID     uint
}

func (m *memoryInterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	m.nextID++
	interview.ID = m.nextID
	interview.CreatedAt = time.Now()
	m.interviews = append(m.interviews, *interview)
	return nil
}

func (m *memoryInterviewRepo) Update(ctx context.Context, interview *models.Interview) error {
	for i := range m.interviews {
		if m.interviews[i].ID == interview.ID {
			m.interviews[i] = *interview
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryInterviewRepo) GetByID(ctx context.Context, id uint) (models.Interview, error) {
	for _, interview := range m.interviews {
		if interview.ID == id {
			return interview, nil
		}
	}
	return models.Interview{}, gorm.ErrRecordNotFound
}

func (m *memoryInterviewRepo) List(ctx context.Context, filter repository.InterviewFilter) ([]models.Interview, int64, error) {
	return append([]models.Interview(nil), m.interviews...), int64(len(m.interviews)), nil
}

func (m *memoryInterviewRepo) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Interview, error) {
	var matched []models.Interview
	for _, interview := range m.interviews {
		if interview.JobApplicantID == applicantID {
			matched = append(matched, interview)
		}
	}
	return matched, nil
}

func (m *memoryInterviewRepo) ExistsForRound(ctx context.Context, applicantID, roundID uint) (bool, error) {
	for _, interview := range m.interviews {
		if interview.JobApplicantID == applicantID && interview.InterviewRoundID == roundID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryInterviewRepo) ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Interview, error) {
	var due []models.Interview
	for _, interview := range m.interviews {
		if interview.Status != models.InterviewStatusPending || interview.ReminderSent {
			continue
		}
		date := time.Time(interview.ScheduledOn)
		if date.Before(from.Truncate(24*time.Hour)) || date.After(to) {
			continue
		}
		due = append(due, interview)
	}
	return due, nil
}

func (m *memoryInterviewRepo) ListAwaitingFeedback(ctx context.Context, onOrBefore time.Time) ([]models.Interview, error) {
	var waiting []models.Interview
	for _, interview := range m.interviews {
		if interview.Status != models.InterviewStatusUnderReview {
			continue
		}
		if time.Time(interview.ScheduledOn).After(onOrBefore) {
			continue
		}
		waiting = append(waiting, interview)
	}
	return waiting, nil
}

func (m *memoryInterviewRepo) MarkReminderSent(ctx context.Context, ids []uint) error {
	for _, id := range ids {
		for i := range m.interviews {
			if m.interviews[i].ID == id {
				m.interviews[i].ReminderSent = true
			}
		}
	}
	return nil
}

func (m *memoryInterviewRepo) UpdateDetailRating(ctx context.Context, interviewID uint, interviewer string, rating float64, comments string) error {
	for i := range m.interviews {
		if m.interviews[i].ID != interviewID {
			continue
		}
		for j := range m.interviews[i].Details {
			if strings.EqualFold(m.interviews[i].Details[j].Interviewer, interviewer) {
				m.interviews[i].Details[j].AverageRating = rating
				m.interviews[i].Details[j].Comments = comments
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

type memoryApplicantRepo struct {
	applicants []models.JobApplicant
	nextID     uint
}

func (m *memoryApplicantRepo) Create(ctx context.Context, applicant *models.JobApplicant) error {
	m.nextID++
	applicant.ID = m.nextID
	applicant.CreatedAt = time.Now()
	m.applicants = append(m.applicants, *applicant)
	return nil
}

func (m *memoryApplicantRepo) Update(ctx context.Context, applicant *models.JobApplicant) error {
	for i := range m.applicants {
		if m.applicants[i].ID == applicant.ID {
			m.applicants[i] = *applicant
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryApplicantRepo) Delete(ctx context.Context, id uint) error {
	for i := range m.applicants {
		if m.applicants[i].ID == id {
			m.applicants = append(m.applicants[:i], m.applicants[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryApplicantRepo) GetByID(ctx context.Context, id uint) (models.JobApplicant, error) {
	for _, applicant := range m.applicants {
		if applicant.ID == id {
			return applicant, nil
		}
	}
	return models.JobApplicant{}, gorm.ErrRecordNotFound
}

func (m *memoryApplicantRepo) GetByEmail(ctx context.Context, email string) (models.JobApplicant, error) {
	for _, applicant := range m.applicants {
		if strings.EqualFold(applicant.Email, strings.TrimSpace(email)) {
			return applicant, nil
		}
	}
	return models.JobApplicant{}, gorm.ErrRecordNotFound
}

func (m *memoryApplicantRepo) List(ctx context.Context, filter repository.ApplicantFilter) ([]models.JobApplicant, int64, error) {
	return append([]models.JobApplicant(nil), m.applicants...), int64(len(m.applicants)), nil
}

type memoryEmailRepo struct {
	templates []models.EmailTemplate
	queue     []models.EmailQueueItem
}

func (m *memoryEmailRepo) GetTemplate(ctx context.Context, name string) (models.EmailTemplate, error) {
	for _, template := range m.templates {
		if template.Name == name {
			return template, nil
		}
	}
	return models.EmailTemplate{}, gorm.ErrRecordNotFound
}

func (m *memoryEmailRepo) TemplateExists(ctx context.Context, name string) (bool, error) {
	_, err := m.GetTemplate(ctx, name)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memoryEmailRepo) UpsertTemplate(ctx context.Context, template *models.EmailTemplate) error {
	for i := range m.templates {
		if m.templates[i].Name == template.Name {
			m.templates[i] = *template
			return nil
		}
	}
	template.ID = uint(len(m.templates) + 1)
	m.templates = append(m.templates, *template)
	return nil
}

func (m *memoryEmailRepo) Enqueue(ctx context.Context, item *models.EmailQueueItem) error {
	item.ID = uint(len(m.queue) + 1)
	item.CreatedAt = time.Now()
	m.queue = append(m.queue, *item)
	return nil
}

func (m *memoryEmailRepo) MarkSent(ctx context.Context, messageID string, at time.Time) error {
	for i := range m.queue {
		if m.queue[i].MessageID == messageID {
			m.queue[i].Status = models.EmailStatusSent
			m.queue[i].SentAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryEmailRepo) MarkError(ctx context.Context, messageID, reason string) error {
	for i := range m.queue {
		if m.queue[i].MessageID == messageID {
			m.queue[i].Status = models.EmailStatusError
			m.queue[i].Error = reason
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryEmailRepo) ListQueue(ctx context.Context, filter repository.EmailQueueFilter) ([]models.EmailQueueItem, error) {
	var matched []models.EmailQueueItem
	for _, item := range m.queue {
		if filter.ReferenceName != "" && item.ReferenceName != filter.ReferenceName {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.MessageLike != "" && !strings.Contains(item.Message, filter.MessageLike) && !strings.Contains(item.Subject, filter.MessageLike) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}

type memorySettingsRepo struct {
	settings models.HRSettings
}

func (m *memorySettingsRepo) Get(ctx context.Context) (models.HRSettings, error) {
	m.settings.ID = 1
	return m.settings, nil
}

func (m *memorySettingsRepo) Save(ctx context.Context, settings *models.HRSettings) error {
	settings.ID = 1
	m.settings = *settings
	return nil
}

type memoryFeedbackRepo struct {
	documents []models.InterviewFeedback
}

func (m *memoryFeedbackRepo) Create(ctx context.Context, feedback *models.InterviewFeedback) error {
	feedback.ID = uint(len(m.documents) + 1)
	feedback.CreatedAt = time.Now()
	m.documents = append(m.documents, *feedback)
	return nil
}

func (m *memoryFeedbackRepo) Exists(ctx context.Context, interviewID uint, interviewer string) (bool, error) {
	for _, doc := range m.documents {
		if doc.InterviewID == interviewID && strings.EqualFold(doc.Interviewer, interviewer) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryFeedbackRepo) ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewFeedback, error) {
	var matched []models.InterviewFeedback
	for _, doc := range m.documents {
		if doc.InterviewID == interviewID {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}
