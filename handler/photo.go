package handler

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/helper"
	"github.com/CuCryptos/cruise-photos/middleware"
	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

const defaultPhotoPriceCents = 1499

type PhotoHandler struct {
	photos  *repository.PhotoRepo
	tables  *repository.TableRepo
	storage helper.PhotoStorage
	rdb     *redis.Client
	feed    *GalleryFeed
}

func NewPhotoHandler(
	photos *repository.PhotoRepo,
	tables *repository.TableRepo,
	storage helper.PhotoStorage,
	rdb *redis.Client,
	feed *GalleryFeed,
) *PhotoHandler {
	return &PhotoHandler{photos: photos, tables: tables, storage: storage, rdb: rdb, feed: feed}
}

// Upload stores one image in blob storage and inserts the photo row priced
// at the server-side default. The blob is removed again if the insert fails.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File and tableId are required", err)
	}
	tableIDStr := c.FormValue("tableId")
	tableID, err := strconv.Atoi(tableIDStr)
	if err != nil || tableID <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File and tableId are required", errors.New("invalid tableId"))
	}

	table, err := h.tables.FindByID(uint(tableID))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Table not found", errors.New("unknown table"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load table", err)
	}

	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not read upload", err)
	}
	defer reader.Close()

	folder := "sessions/" + slug.Make(table.Session.Name)
	ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	publicID := fmt.Sprintf("%s-%s", uuid.NewString(), ext)

	url, storedID, err := h.storage.Upload(c.Context(), reader, folder, publicID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", err)
	}

	photo := model.Photo{
		TableID:            table.ID,
		CloudinaryPublicID: storedID,
		ThumbnailURL:       helper.ThumbnailURL(url),
		FullURL:            url,
		PriceCents:         int64(config.ConfigInt("DEFAULT_PHOTO_PRICE_CENTS", defaultPhotoPriceCents)),
	}
	if err := h.photos.Create(&photo); err != nil {
		// Don't leave an orphan blob behind.
		if delErr := h.storage.Delete(c.Context(), storedID); delErr != nil {
			log.Printf("orphan blob cleanup failed for %s: %v", storedID, delErr)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not save photo", err)
	}

	middleware.InvalidateGallery(h.rdb, table.AccessCode)
	h.feed.PublishPhotoAdded(table.ID, &photo)

	return utils.SuccessResponse(c, fiber.StatusCreated, photo)
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing photo id", errors.New("locals not set"))
	}

	photo, err := h.photos.FindByID(uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Photo not found", errors.New("unknown photo"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load photo", err)
	}

	if err := h.photos.Delete(photo.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not delete photo", err)
	}
	if err := h.storage.Delete(c.Context(), photo.CloudinaryPublicID); err != nil {
		log.Printf("blob delete failed for photo %d: %v", photo.ID, err)
	}

	if table, err := h.tables.FindByID(photo.TableID); err == nil {
		middleware.InvalidateGallery(h.rdb, table.AccessCode)
	}

	return c.JSON(fiber.Map{"success": true})
}
