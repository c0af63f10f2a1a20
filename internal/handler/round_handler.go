package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/service"
	"github.com/hireflowhq/hireflow-api/internal/utils"
)

// RoundHandler handles interview round endpoints.
type RoundHandler struct {
	service service.RoundService
	logger  zerolog.Logger
}

// NewRoundHandler constructs the handler.
func NewRoundHandler(service service.RoundService, logger zerolog.Logger) *RoundHandler {
	return &RoundHandler{
		service: service,
		logger:  logger.With().Str("component", "round_handler").Logger(),
	}
}

// Register wires routes for interview rounds.
func (h *RoundHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/questions", h.suggestQuestions)
}

func (h *RoundHandler) create(c *fiber.Ctx) error {
	var payload dto.RoundCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to create interview round")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview round created", result)
}

func (h *RoundHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.UserContext(), dto.RoundListRequest{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list interview rounds")
		return utils.SendError(c, statusForError(err), "failed to list interview rounds")
	}

	return utils.SendSuccess(c, "interview rounds retrieved", result)
}

func (h *RoundHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid round id")
	}

	result, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview round retrieved", result)
}

func (h *RoundHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid round id")
	}

	var payload dto.RoundUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("round_id", id).Msg("failed to update interview round")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview round updated", result)
}

func (h *RoundHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid round id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview round deleted", nil)
}

func (h *RoundHandler) suggestQuestions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid round id")
	}

	result, err := h.service.SuggestQuestions(c.UserContext(), id)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("round_id", id).Msg("failed to suggest questions")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "questions suggested", result)
}
