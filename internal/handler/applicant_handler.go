package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/repository"
	"github.com/hireflowhq/hireflow-api/internal/service"
	"github.com/hireflowhq/hireflow-api/internal/utils"
)

const maxResumeSize = 10 << 20

// ApplicantHandler handles job applicant endpoints.
type ApplicantHandler struct {
	service service.ApplicantService
	logger  zerolog.Logger
}

// NewApplicantHandler constructs the handler.
func NewApplicantHandler(service service.ApplicantService, logger zerolog.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		service: service,
		logger:  logger.With().Str("component", "applicant_handler").Logger(),
	}
}

// Register wires routes for applicants.
func (h *ApplicantHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/resume", h.uploadResume)
	router.Get("/:id/interview-summary", h.interviewSummary)
}

func (h *ApplicantHandler) create(c *fiber.Ctx) error {
	var payload dto.ApplicantCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to create applicant")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "applicant created", result)
}

func (h *ApplicantHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.UserContext(), repository.ApplicantFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list applicants")
		return utils.SendError(c, statusForError(err), "failed to list applicants")
	}

	return utils.SendSuccess(c, "applicants retrieved", result)
}

func (h *ApplicantHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	}

	result, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "applicant retrieved", result)
}

func (h *ApplicantHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	}

	var payload dto.ApplicantUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "applicant updated", result)
}

func (h *ApplicantHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "applicant deleted", nil)
}

func (h *ApplicantHandler) uploadResume(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "resume file is required")
	}
	if fileHeader.Size > maxResumeSize {
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "resume exceeds the size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read resume file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read resume file")
	}

	result, err := h.service.UploadResume(c.UserContext(), id, fileHeader.Filename, content)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("applicant_id", id).Msg("failed to upload resume")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "resume uploaded", result)
}

func (h *ApplicantHandler) interviewSummary(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	}

	result, err := h.service.GetInterviewSummary(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview summary retrieved", result)
}
