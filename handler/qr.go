package handler

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/utils"
)

type QRHandler struct{}

func NewQRHandler() *QRHandler {
	return &QRHandler{}
}

func galleryURL(accessCode string) string {
	appURL := config.Config("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}
	return appURL + "/gallery/" + accessCode
}

// Batch renders printable QR codes for a stack of tables in one call.
func (h *QRHandler) Batch(c *fiber.Ctx) error {
	type batchTable struct {
		TableNumber string `json:"tableNumber"`
		AccessCode  string `json:"accessCode"`
	}
	type batchInput struct {
		Tables []batchTable `json:"tables"`
	}

	input := new(batchInput)
	if err := c.BodyParser(input); err != nil || input.Tables == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tables array is required", err)
	}

	type qrEntry struct {
		TableNumber string `json:"tableNumber"`
		AccessCode  string `json:"accessCode"`
		QRDataURL   string `json:"qrDataUrl"`
	}
	qrCodes := make([]qrEntry, 0, len(input.Tables))
	for _, table := range input.Tables {
		png, err := utils.GenerateQRCode(galleryURL(table.AccessCode), 300)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR codes", err)
		}
		qrCodes = append(qrCodes, qrEntry{
			TableNumber: table.TableNumber,
			AccessCode:  table.AccessCode,
			QRDataURL:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		})
	}

	return c.JSON(fiber.Map{"qrCodes": qrCodes})
}

// Single streams one table's QR PNG, for ad-hoc printing.
func (h *QRHandler) Single(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Access code is required", errors.New("empty code"))
	}

	png, err := utils.GenerateQRCode(galleryURL(code), 300)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
