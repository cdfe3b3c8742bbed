package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

type GalleryHandler struct {
	tables *repository.TableRepo
}

func NewGalleryHandler(tables *repository.TableRepo) *GalleryHandler {
	return &GalleryHandler{tables: tables}
}

// Get resolves a guest access code to the table, its session and the photos
// up for purchase. The code is the only credential a guest ever presents.
func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	code := c.Params("code")

	table, err := h.tables.FindByAccessCode(code)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Invalid access code", errors.New("unknown code"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load gallery", err)
	}

	photos := table.Photos
	if photos == nil {
		photos = []model.Photo{}
	}

	return c.JSON(fiber.Map{
		"table": fiber.Map{
			"id":          table.ID,
			"tableNumber": table.TableNumber,
			"accessCode":  table.AccessCode,
		},
		"session": fiber.Map{
			"id":         table.Session.ID,
			"name":       table.Session.Name,
			"cruiseDate": table.Session.CruiseDate,
		},
		"photos": photos,
	})
}
