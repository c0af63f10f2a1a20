package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/service"
	"github.com/hireflowhq/hireflow-api/internal/utils"
)

// InterviewHandler handles interview scheduling and feedback endpoints.
type InterviewHandler struct {
	interviews service.InterviewService
	feedback   service.FeedbackService
	logger     zerolog.Logger
}

// NewInterviewHandler constructs the handler.
func NewInterviewHandler(interviews service.InterviewService, feedback service.FeedbackService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		feedback:   feedback,
		logger:     logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires routes for interviews.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("", h.schedule)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/:id/reschedule", h.reschedule)
	router.Patch("/:id/status", h.updateStatus)
	router.Post("/:id/feedback", h.submitFeedback)
	router.Get("/:id/feedback", h.listFeedback)
}

func (h *InterviewHandler) schedule(c *fiber.Ctx) error {
	var payload dto.InterviewScheduleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.interviews.Schedule(c.UserContext(), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to schedule interview")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview scheduled", result)
}

func (h *InterviewHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	query := dto.InterviewListRequest{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	if applicantRaw, err := parseQueryInt(c, "applicant_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid applicant id")
	} else if applicantRaw > 0 {
		applicantID := uint(applicantRaw)
		query.ApplicantID = &applicantID
	}

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid from date")
		}
		query.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid to date")
		}
		query.To = &parsed
	}

	result, err := h.interviews.List(c.UserContext(), query)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list interviews")
		return utils.SendError(c, statusForError(err), "failed to list interviews")
	}

	return utils.SendSuccess(c, "interviews retrieved", result)
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	result, err := h.interviews.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview retrieved", result)
}

func (h *InterviewHandler) reschedule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	var payload dto.InterviewRescheduleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.interviews.Reschedule(c.UserContext(), id, payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("interview_id", id).Msg("failed to reschedule interview")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview rescheduled", result)
}

func (h *InterviewHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	var payload dto.InterviewStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.interviews.UpdateStatus(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "interview status updated", result)
}

func (h *InterviewHandler) submitFeedback(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Interviewers may only submit feedback as themselves.
	if email := userEmailFromContext(c); email != "" {
		payload.Interviewer = email
	}

	result, err := h.feedback.Submit(c.UserContext(), id, payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("interview_id", id).Msg("failed to submit feedback")
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback submitted", result)
}

func (h *InterviewHandler) listFeedback(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	result, err := h.feedback.ListByInterview(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, statusForError(err), err.Error())
	}

	return utils.SendSuccess(c, "feedback retrieved", result)
}
