package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

type TableHandler struct {
	tables *repository.TableRepo
	mailer Mailer
}

func NewTableHandler(tables *repository.TableRepo, mailer Mailer) *TableHandler {
	return &TableHandler{tables: tables, mailer: mailer}
}

func (h *TableHandler) ListBySession(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing session id", errors.New("locals not set"))
	}
	tables, err := h.tables.ListBySession(uint(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load tables", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func (h *TableHandler) Create(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing session id", errors.New("locals not set"))
	}
	input, ok := c.Locals("tableInput").(model.CreateTableInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing table input", errors.New("locals not set"))
	}

	newTable := model.Table{SessionID: uint(id)}
	copier.Copy(&newTable, &input)

	if err := h.tables.Create(&newTable, utils.GenerateAccessCode); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create table", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newTable)
}

// Notify mails a guest their gallery link and access code.
func (h *TableHandler) Notify(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing table id", errors.New("locals not set"))
	}

	type NotifyInput struct {
		Email string `json:"email"`
	}
	input := new(NotifyInput)
	if err := c.BodyParser(input); err != nil || input.Email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email is required", err)
	}

	table, err := h.tables.FindByID(uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Table not found", errors.New("unknown table"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load table", err)
	}

	if err := h.mailer.SendGalleryAccess(input.Email, table.AccessCode, table.Session.Name, table.TableNumber); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send email", err)
	}

	return c.JSON(fiber.Map{"success": true})
}
