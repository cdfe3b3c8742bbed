package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

type SessionHandler struct {
	sessions *repository.SessionRepo
}

func NewSessionHandler(sessions *repository.SessionRepo) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.sessions.List()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load sessions", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sessions)
}

func (h *SessionHandler) GetById(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing session id", errors.New("locals not set"))
	}
	session, err := h.sessions.FindByID(uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", errors.New("unknown session"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load session", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

// Create adds a cruise and optionally a batch of numbered tables, each with
// a freshly generated access code.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	input, ok := c.Locals("sessionInput").(model.CreateSessionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing session input", errors.New("locals not set"))
	}

	cruiseDate, err := time.Parse("2006-01-02", input.CruiseDate)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid cruise date", err)
	}

	newSession := model.Session{}
	copier.Copy(&newSession, &input)
	newSession.CruiseDate = cruiseDate

	if err := h.sessions.CreateWithTables(&newSession, input.TableCount, utils.GenerateAccessCode); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create session", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newSession)
}
