package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/CuCryptos/cruise-photos/model"
)

// GalleryFeed pushes new-photo events to guests sitting on a gallery page.
// With redis configured, events fan out across processes via pub/sub;
// without it, broadcast stays in-process.
type GalleryFeed struct {
	rdb     *redis.Client
	clients map[uint]map[*websocket.Conn]bool
	mu      sync.Mutex
}

func NewGalleryFeed(rdb *redis.Client) *GalleryFeed {
	return &GalleryFeed{
		rdb:     rdb,
		clients: make(map[uint]map[*websocket.Conn]bool),
	}
}

type galleryEvent struct {
	Event string       `json:"event"`
	Photo *model.Photo `json:"photo"`
}

func galleryChannel(tableID uint) string {
	return fmt.Sprintf("gallery:%d", tableID)
}

// Serve handles one websocket connection for a table's gallery.
func (f *GalleryFeed) Serve(c *websocket.Conn) {
	id64, err := strconv.ParseUint(c.Params("tableId"), 10, 64)
	if err != nil {
		c.Close()
		return
	}
	tableID := uint(id64)

	defer func() {
		f.mu.Lock()
		if f.clients[tableID] != nil {
			delete(f.clients[tableID], c)
		}
		f.mu.Unlock()
		c.Close()
	}()

	f.mu.Lock()
	if f.clients[tableID] == nil {
		f.clients[tableID] = make(map[*websocket.Conn]bool)
	}
	f.clients[tableID][c] = true
	f.mu.Unlock()

	if f.rdb != nil {
		pubsub := f.rdb.Subscribe(context.Background(), galleryChannel(tableID))
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
		return
	}

	// No redis: hold the connection open; broadcasts come from
	// PublishPhotoAdded directly.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishPhotoAdded tells everyone watching the table about a new photo.
func (f *GalleryFeed) PublishPhotoAdded(tableID uint, photo *model.Photo) {
	payload, err := json.Marshal(galleryEvent{Event: "photo_added", Photo: photo})
	if err != nil {
		log.Printf("gallery feed marshal failed: %v", err)
		return
	}

	if f.rdb != nil {
		if err := f.rdb.Publish(context.Background(), galleryChannel(tableID), payload).Err(); err != nil {
			log.Printf("gallery feed publish failed: %v", err)
		}
		return
	}

	f.mu.Lock()
	for conn := range f.clients[tableID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(f.clients[tableID], conn)
		}
	}
	f.mu.Unlock()
}
