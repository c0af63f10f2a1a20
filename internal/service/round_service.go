package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

var (
	// ErrDuplicateInterviewRound indicates another round already uses the
	// (designation, name) pair.
	ErrDuplicateInterviewRound = errors.New("an interview round with this name already exists for the designation")
	// ErrRoundNotFound indicates the requested round does not exist.
	ErrRoundNotFound = errors.New("interview round not found")
	// ErrSuggestionsUnavailable indicates no AI provider is configured.
	ErrSuggestionsUnavailable = errors.New("question suggestions are not configured")
)

// QuestionSuggester produces interview questions for a round's skill set.
type QuestionSuggester interface {
	Suggest(ctx context.Context, round string, interviewType string, skills []string) ([]string, error)
}

// RoundService exposes interview round use cases.
type RoundService interface {
	Create(ctx context.Context, payload dto.RoundCreateRequest) (dto.RoundResponse, error)
	Get(ctx context.Context, id uint) (dto.RoundResponse, error)
	List(ctx context.Context, payload dto.RoundListRequest) (dto.RoundListResponse, error)
	Update(ctx context.Context, id uint, payload dto.RoundUpdateRequest) (dto.RoundResponse, error)
	Delete(ctx context.Context, id uint) error
	SuggestQuestions(ctx context.Context, id uint) (dto.SuggestedQuestionsResponse, error)
}

type roundService struct {
	rounds    repository.InterviewRoundRepository
	masters   repository.MasterRepository
	suggester QuestionSuggester
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRoundService builds a new interview round service.
func NewRoundService(rounds repository.InterviewRoundRepository, masters repository.MasterRepository, suggester QuestionSuggester, validate *validator.Validate, logger zerolog.Logger) RoundService {
	return &roundService{
		rounds:    rounds,
		masters:   masters,
		suggester: suggester,
		validator: validate,
		logger:    logger.With().Str("component", "round_service").Logger(),
	}
}

func (s *roundService) Create(ctx context.Context, payload dto.RoundCreateRequest) (dto.RoundResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoundResponse{}, err
	}

	round := models.InterviewRound{
		Name:                  strings.TrimSpace(payload.Name),
		ExpectedAverageRating: payload.ExpectedAverageRating,
	}

	interviewType, err := s.masters.EnsureInterviewType(ctx, payload.InterviewType, "")
	if err != nil {
		return dto.RoundResponse{}, err
	}
	round.InterviewTypeID = interviewType.ID
	round.InterviewType = interviewType

	if payload.Designation != "" {
		designation, err := s.masters.EnsureDesignation(ctx, payload.Designation)
		if err != nil {
			return dto.RoundResponse{}, err
		}
		round.DesignationID = &designation.ID
		round.Designation = &designation
	}

	duplicate, err := s.rounds.ExistsWithName(ctx, round.DesignationID, round.Name, 0)
	if err != nil {
		return dto.RoundResponse{}, err
	}
	if duplicate {
		return dto.RoundResponse{}, ErrDuplicateInterviewRound
	}

	skills, err := s.masters.EnsureSkills(ctx, payload.Skills)
	if err != nil {
		return dto.RoundResponse{}, err
	}
	for _, skill := range skills {
		round.Skills = append(round.Skills, models.RoundSkill{SkillID: skill.ID, Skill: skill})
	}

	for _, interviewer := range payload.Interviewers {
		round.Interviewers = append(round.Interviewers, models.RoundMember{Email: strings.ToLower(strings.TrimSpace(interviewer))})
	}

	if err := s.rounds.Create(ctx, &round); err != nil {
		return dto.RoundResponse{}, err
	}

	s.logger.Info().Uint("round_id", round.ID).Str("name", round.Name).Msg("interview round created")

	return dto.NewRoundResponse(round), nil
}

func (s *roundService) Get(ctx context.Context, id uint) (dto.RoundResponse, error) {
	round, err := s.rounds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RoundResponse{}, ErrRoundNotFound
		}
		return dto.RoundResponse{}, err
	}
	return dto.NewRoundResponse(round), nil
}

func (s *roundService) List(ctx context.Context, payload dto.RoundListRequest) (dto.RoundListResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoundListResponse{}, err
	}

	pageSize := payload.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	rounds, total, err := s.rounds.List(ctx, repository.RoundFilter{
		Search:   payload.Search,
		Page:     payload.Page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.RoundListResponse{}, err
	}

	return dto.RoundListResponse{
		Items:      dto.NewRoundResponseSlice(rounds),
		Pagination: dto.NewPaginationMeta(payload.Page, pageSize, total),
	}, nil
}

func (s *roundService) Update(ctx context.Context, id uint, payload dto.RoundUpdateRequest) (dto.RoundResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoundResponse{}, err
	}

	round, err := s.rounds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RoundResponse{}, ErrRoundNotFound
		}
		return dto.RoundResponse{}, err
	}

	if payload.Name != nil {
		round.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Designation != nil {
		designation, err := s.masters.EnsureDesignation(ctx, *payload.Designation)
		if err != nil {
			return dto.RoundResponse{}, err
		}
		round.DesignationID = &designation.ID
		round.Designation = &designation
	}
	if payload.ExpectedAverageRating != nil {
		round.ExpectedAverageRating = *payload.ExpectedAverageRating
	}

	duplicate, err := s.rounds.ExistsWithName(ctx, round.DesignationID, round.Name, round.ID)
	if err != nil {
		return dto.RoundResponse{}, err
	}
	if duplicate {
		return dto.RoundResponse{}, ErrDuplicateInterviewRound
	}

	if payload.Skills != nil {
		skills, err := s.masters.EnsureSkills(ctx, payload.Skills)
		if err != nil {
			return dto.RoundResponse{}, err
		}
		round.Skills = round.Skills[:0]
		for _, skill := range skills {
			round.Skills = append(round.Skills, models.RoundSkill{InterviewRoundID: round.ID, SkillID: skill.ID, Skill: skill})
		}
	}

	if payload.Interviewers != nil {
		round.Interviewers = round.Interviewers[:0]
		for _, interviewer := range payload.Interviewers {
			round.Interviewers = append(round.Interviewers, models.RoundMember{InterviewRoundID: round.ID, Email: strings.ToLower(strings.TrimSpace(interviewer))})
		}
	}

	if err := s.rounds.Update(ctx, &round); err != nil {
		return dto.RoundResponse{}, err
	}

	s.logger.Info().Uint("round_id", round.ID).Msg("interview round updated")

	return dto.NewRoundResponse(round), nil
}

func (s *roundService) Delete(ctx context.Context, id uint) error {
	if err := s.rounds.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoundNotFound
		}
		return err
	}

	s.logger.Info().Uint("round_id", id).Msg("interview round deleted")
	return nil
}

func (s *roundService) SuggestQuestions(ctx context.Context, id uint) (dto.SuggestedQuestionsResponse, error) {
	if s.suggester == nil {
		return dto.SuggestedQuestionsResponse{}, ErrSuggestionsUnavailable
	}

	round, err := s.rounds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SuggestedQuestionsResponse{}, ErrRoundNotFound
		}
		return dto.SuggestedQuestionsResponse{}, err
	}

	skills := round.SkillNames()
	questions, err := s.suggester.Suggest(ctx, round.Name, round.InterviewType.Name, skills)
	if err != nil {
		return dto.SuggestedQuestionsResponse{}, err
	}

	return dto.SuggestedQuestionsResponse{
		Round:     round.Name,
		Skills:    skills,
		Questions: questions,
	}, nil
}
