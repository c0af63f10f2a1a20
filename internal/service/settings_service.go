package service

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

//go:embed fixtures/default_templates.json fixtures/default_templates.schema.json
var templateFixtures embed.FS

// SettingsService manages the HR settings singleton and the seeded email
// templates the reminder sweeps depend on.
type SettingsService interface {
	Get(ctx context.Context) (dto.SettingsResponse, error)
	Update(ctx context.Context, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error)
	SeedDefaultTemplates(ctx context.Context) error
}

type settingsService struct {
	settings  repository.SettingsRepository
	emails    repository.EmailRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsService builds a new settings service.
func NewSettingsService(settings repository.SettingsRepository, emails repository.EmailRepository, validate *validator.Validate, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settings:  settings,
		emails:    emails,
		validator: validate,
		logger:    logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (dto.SettingsResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return dto.SettingsResponse{}, err
	}
	return dto.NewSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingsResponse{}, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return dto.SettingsResponse{}, err
	}

	if payload.SendInterviewReminder != nil {
		settings.SendInterviewReminder = *payload.SendInterviewReminder
	}
	if payload.InterviewReminderTemplate != nil {
		if err := s.requireTemplate(ctx, *payload.InterviewReminderTemplate); err != nil {
			return dto.SettingsResponse{}, err
		}
		settings.InterviewReminderTemplate = *payload.InterviewReminderTemplate
	}
	if payload.RemindBefore != nil {
		window, err := time.ParseDuration(*payload.RemindBefore)
		if err != nil {
			return dto.SettingsResponse{}, fmt.Errorf("invalid remind_before duration: %w", err)
		}
		settings.RemindBefore = window
	}
	if payload.SendFeedbackReminder != nil {
		settings.SendFeedbackReminder = *payload.SendFeedbackReminder
	}
	if payload.FeedbackReminderTemplate != nil {
		if err := s.requireTemplate(ctx, *payload.FeedbackReminderTemplate); err != nil {
			return dto.SettingsResponse{}, err
		}
		settings.FeedbackReminderTemplate = *payload.FeedbackReminderTemplate
	}
	if payload.SenderEmail != nil {
		settings.SenderEmail = *payload.SenderEmail
	}

	if err := s.settings.Save(ctx, &settings); err != nil {
		return dto.SettingsResponse{}, err
	}

	s.logger.Info().
		Bool("interview_reminder", settings.SendInterviewReminder).
		Bool("feedback_reminder", settings.SendFeedbackReminder).
		Msg("settings updated")

	return dto.NewSettingsResponse(settings), nil
}

func (s *settingsService) requireTemplate(ctx context.Context, name string) error {
	exists, err := s.emails.TemplateExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTemplateNotFound
	}
	return nil
}

type templateFixture struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SeedDefaultTemplates loads the bundled reminder templates, validating the
// fixture against its schema before touching the database. Existing
// templates are left as-is so operator edits survive restarts.
func (s *settingsService) SeedDefaultTemplates(ctx context.Context) error {
	raw, err := templateFixtures.ReadFile("fixtures/default_templates.json")
	if err != nil {
		return fmt.Errorf("read template fixtures: %w", err)
	}
	schemaRaw, err := templateFixtures.ReadFile("fixtures/default_templates.schema.json")
	if err != nil {
		return fmt.Errorf("read template schema: %w", err)
	}

	schema, err := jsonschema.CompileString("default_templates.schema.json", string(schemaRaw))
	if err != nil {
		return fmt.Errorf("compile template schema: %w", err)
	}

	var document interface{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return fmt.Errorf("parse template fixtures: %w", err)
	}
	if err := schema.Validate(document); err != nil {
		return fmt.Errorf("template fixtures failed schema validation: %w", err)
	}

	var fixtures []templateFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("decode template fixtures: %w", err)
	}

	for _, fixture := range fixtures {
		exists, err := s.emails.TemplateExists(ctx, fixture.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		template := models.EmailTemplate{
			Name:    fixture.Name,
			Subject: fixture.Subject,
			Body:    fixture.Body,
		}
		if err := s.emails.UpsertTemplate(ctx, &template); err != nil {
			return fmt.Errorf("seed template %q: %w", fixture.Name, err)
		}
		s.logger.Info().Str("template", fixture.Name).Msg("seeded email template")
	}

	return nil
}
