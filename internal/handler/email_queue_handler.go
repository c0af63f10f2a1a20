package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/repository"
	"github.com/hireflowhq/hireflow-api/internal/service"
	"github.com/hireflowhq/hireflow-api/internal/utils"
)

// EmailQueueHandler exposes the outbound mail queue to HR staff.
type EmailQueueHandler struct {
	service service.MailService
	logger  zerolog.Logger
}

// NewEmailQueueHandler constructs the handler.
func NewEmailQueueHandler(service service.MailService, logger zerolog.Logger) *EmailQueueHandler {
	return &EmailQueueHandler{
		service: service,
		logger:  logger.With().Str("component", "email_queue_handler").Logger(),
	}
}

// Register wires routes for the email queue.
func (h *EmailQueueHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *EmailQueueHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	result, err := h.service.ListQueue(c.UserContext(), repository.EmailQueueFilter{
		ReferenceType: c.Query("reference_type"),
		ReferenceName: c.Query("reference_name"),
		Status:        c.Query("status"),
		MessageLike:   c.Query("contains"),
		Limit:         limit,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list email queue")
		return utils.SendError(c, statusForError(err), "failed to list email queue")
	}

	return utils.SendSuccess(c, "email queue retrieved", result)
}
