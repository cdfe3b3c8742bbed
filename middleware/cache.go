package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/CuCryptos/cruise-photos/config"
)

const galleryCacheTTL = 60 * time.Second

// NewRedisClient returns nil when REDIS_ADDR is unset; callers treat a nil
// client as cache-off.
func NewRedisClient() *redis.Client {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

func galleryCacheKey(code string) string {
	return "gallery:" + strings.ToUpper(code)
}

// GalleryCache is a read-through cache for gallery lookups. Redis being
// down degrades to a plain pass-through.
func GalleryCache(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		key := galleryCacheKey(c.Params("code"))
		ctx := context.Background()

		if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Only successful gallery payloads are worth keeping.
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			rdb.Set(ctx, key, body, galleryCacheTTL)
		}
		return nil
	}
}

// InvalidateGallery drops a table's cached gallery after photo churn.
func InvalidateGallery(rdb *redis.Client, code string) {
	if rdb == nil {
		return
	}
	rdb.Del(context.Background(), galleryCacheKey(code))
}
