package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

var (
	// ErrDuplicateApplicant indicates the email is already registered.
	ErrDuplicateApplicant = errors.New("an applicant with this email already exists")
	// ErrUnsupportedResumeType indicates the uploaded file is not a resume
	// format we accept.
	ErrUnsupportedResumeType = errors.New("resume must be a PDF or Word document")
)

var allowedResumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileUploader stores an uploaded file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, fileName string, content []byte) (string, error)
}

// ApplicantService exposes applicant use cases including the dashboard
// summary aggregation.
type ApplicantService interface {
	Create(ctx context.Context, payload dto.ApplicantCreateRequest) (dto.ApplicantResponse, error)
	Get(ctx context.Context, id uint) (dto.ApplicantResponse, error)
	List(ctx context.Context, filter repository.ApplicantFilter) (dto.ApplicantListResponse, error)
	Update(ctx context.Context, id uint, payload dto.ApplicantUpdateRequest) (dto.ApplicantResponse, error)
	Delete(ctx context.Context, id uint) error
	UploadResume(ctx context.Context, id uint, fileName string, content []byte) (dto.ApplicantResponse, error)
	GetInterviewSummary(ctx context.Context, id uint) (dto.ApplicantSummaryResponse, error)
}

type applicantService struct {
	applicants repository.ApplicantRepository
	interviews repository.InterviewRepository
	masters    repository.MasterRepository
	uploader   FileUploader
	cache      *redis.Client
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewApplicantService builds a new applicant service. The redis client is
// optional; without one the summary is computed on every request.
func NewApplicantService(
	applicants repository.ApplicantRepository,
	interviews repository.InterviewRepository,
	masters repository.MasterRepository,
	uploader FileUploader,
	cache *redis.Client,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) ApplicantService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &applicantService{
		applicants: applicants,
		interviews: interviews,
		masters:    masters,
		uploader:   uploader,
		cache:      cache,
		cacheTTL:   cacheTTL,
		validator:  validate,
		logger:     logger.With().Str("component", "applicant_service").Logger(),
	}
}

func (s *applicantService) Create(ctx context.Context, payload dto.ApplicantCreateRequest) (dto.ApplicantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicantResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.applicants.GetByEmail(ctx, email); err == nil {
		return dto.ApplicantResponse{}, ErrDuplicateApplicant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ApplicantResponse{}, err
	}

	applicant := models.JobApplicant{
		Name:   strings.TrimSpace(payload.Name),
		Email:  email,
		Phone:  strings.TrimSpace(payload.Phone),
		Source: payload.Source,
		Status: models.ApplicantStatusOpen,
	}

	if payload.Designation != "" {
		designation, err := s.masters.EnsureDesignation(ctx, payload.Designation)
		if err != nil {
			return dto.ApplicantResponse{}, err
		}
		applicant.DesignationID = &designation.ID
		applicant.Designation = designation
	}

	if err := s.applicants.Create(ctx, &applicant); err != nil {
		return dto.ApplicantResponse{}, err
	}

	s.logger.Info().Uint("applicant_id", applicant.ID).Str("email", applicant.Email).Msg("applicant registered")

	return dto.NewApplicantResponse(applicant), nil
}

func (s *applicantService) Get(ctx context.Context, id uint) (dto.ApplicantResponse, error) {
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantResponse{}, ErrApplicantNotFound
		}
		return dto.ApplicantResponse{}, err
	}
	return dto.NewApplicantResponse(applicant), nil
}

func (s *applicantService) List(ctx context.Context, filter repository.ApplicantFilter) (dto.ApplicantListResponse, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	applicants, total, err := s.applicants.List(ctx, filter)
	if err != nil {
		return dto.ApplicantListResponse{}, err
	}

	return dto.ApplicantListResponse{
		Items:      dto.NewApplicantResponseSlice(applicants),
		Pagination: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *applicantService) Update(ctx context.Context, id uint, payload dto.ApplicantUpdateRequest) (dto.ApplicantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicantResponse{}, err
	}

	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantResponse{}, ErrApplicantNotFound
		}
		return dto.ApplicantResponse{}, err
	}

	if payload.Name != nil {
		applicant.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Phone != nil {
		applicant.Phone = strings.TrimSpace(*payload.Phone)
	}
	if payload.Status != nil {
		applicant.Status = *payload.Status
	}
	if payload.Designation != nil {
		designation, err := s.masters.EnsureDesignation(ctx, *payload.Designation)
		if err != nil {
			return dto.ApplicantResponse{}, err
		}
		applicant.DesignationID = &designation.ID
		applicant.Designation = designation
	}

	if err := s.applicants.Update(ctx, &applicant); err != nil {
		return dto.ApplicantResponse{}, err
	}

	s.invalidateSummary(ctx, applicant.ID)

	return dto.NewApplicantResponse(applicant), nil
}

func (s *applicantService) Delete(ctx context.Context, id uint) error {
	if err := s.applicants.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicantNotFound
		}
		return err
	}

	s.invalidateSummary(ctx, id)
	s.logger.Info().Uint("applicant_id", id).Msg("applicant deleted")
	return nil
}

// UploadResume sniffs the real content type before accepting the file. The
// client-supplied extension is not trusted.
func (s *applicantService) UploadResume(ctx context.Context, id uint, fileName string, content []byte) (dto.ApplicantResponse, error) {
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantResponse{}, ErrApplicantNotFound
		}
		return dto.ApplicantResponse{}, err
	}

	detected := mimetype.Detect(content)
	if !mimetype.EqualsAny(detected.String(), allowedResumeTypes...) {
		return dto.ApplicantResponse{}, ErrUnsupportedResumeType
	}

	url, err := s.uploader.Upload(ctx, fileName, content)
	if err != nil {
		return dto.ApplicantResponse{}, fmt.Errorf("upload resume: %w", err)
	}

	applicant.ResumeURL = url
	if err := s.applicants.Update(ctx, &applicant); err != nil {
		return dto.ApplicantResponse{}, err
	}

	s.logger.Info().
		Uint("applicant_id", applicant.ID).
		Str("mime", detected.String()).
		Msg("resume uploaded")

	return dto.NewApplicantResponse(applicant), nil
}

// GetInterviewSummary aggregates the applicant's sessions for the dashboard.
// Ratings are scaled onto the star scale; sessions with no recorded status
// surface as pending.
func (s *applicantService) GetInterviewSummary(ctx context.Context, id uint) (dto.ApplicantSummaryResponse, error) {
	if cached, ok := s.cachedSummary(ctx, id); ok {
		return cached, nil
	}

	if _, err := s.applicants.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantSummaryResponse{}, ErrApplicantNotFound
		}
		return dto.ApplicantSummaryResponse{}, err
	}

	interviews, err := s.interviews.ListByApplicant(ctx, id)
	if err != nil {
		return dto.ApplicantSummaryResponse{}, err
	}

	summary := dto.ApplicantSummaryResponse{
		Stars:      models.RatingScale,
		Interviews: make(map[string]dto.InterviewSnapshot, len(interviews)),
	}
	for _, interview := range interviews {
		status := interview.Status
		if status == "" {
			status = models.InterviewStatusPending
		}
		summary.Interviews[interview.Name()] = dto.InterviewSnapshot{
			Name:                  interview.Name(),
			InterviewRound:        interview.InterviewRound.Name,
			ScheduledOn:           time.Time(interview.ScheduledOn).Format(dateLayout),
			AverageRating:         interview.AverageRating * models.RatingScale,
			ExpectedAverageRating: interview.InterviewRound.ExpectedAverageRating * models.RatingScale,
			Status:                status,
		}
	}

	s.storeSummary(ctx, id, summary)
	return summary, nil
}

func summaryCacheKey(id uint) string {
	return fmt.Sprintf("hireflow:applicant_summary:%d", id)
}

func (s *applicantService) cachedSummary(ctx context.Context, id uint) (dto.ApplicantSummaryResponse, bool) {
	if s.cache == nil {
		return dto.ApplicantSummaryResponse{}, false
	}

	payload, err := s.cache.Get(ctx, summaryCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Uint("applicant_id", id).Msg("summary cache read failed")
		}
		return dto.ApplicantSummaryResponse{}, false
	}

	var summary dto.ApplicantSummaryResponse
	if err := json.Unmarshal(payload, &summary); err != nil {
		return dto.ApplicantSummaryResponse{}, false
	}
	return summary, true
}

func (s *applicantService) storeSummary(ctx context.Context, id uint, summary dto.ApplicantSummaryResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey(id), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("applicant_id", id).Msg("summary cache write failed")
	}
}

func (s *applicantService) invalidateSummary(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey(id)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("applicant_id", id).Msg("summary cache invalidation failed")
	}
}
