package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/middleware"
	"github.com/hireflowhq/hireflow-api/internal/service"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseIDParam(c *fiber.Ctx, key string) (uint, error) {
	raw := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

func userEmailFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_email"); v != nil {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// statusForError maps domain sentinel errors onto HTTP status codes so every
// handler reports them consistently.
func statusForError(err error) int {
	switch {
	case isValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, service.ErrApplicantNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateInterviewRound),
		errors.Is(err, service.ErrDuplicateInterview),
		errors.Is(err, service.ErrDuplicateFeedback),
		errors.Is(err, service.ErrDuplicateApplicant):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrDesignationMismatch),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInterviewClosed),
		errors.Is(err, service.ErrUnsupportedResumeType):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotPanelMember):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrSuggestionsUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
