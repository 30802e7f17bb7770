package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"playground_store/config"
	"playground_store/database"
	"playground_store/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})

	installationClients = make(map[uint]map[*websocket.Conn]bool)
	installationMu      sync.Mutex
)

// InstallationWebsocket streams live status updates for one installation.
// Admin dashboards and the customer's tracking page subscribe here; crews
// publish through PublishInstallationUpdate on every state change.
func InstallationWebsocket(c *websocket.Conn) {
	idStr := c.Params("id")
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		log.Printf("invalid installation id on ws connect: %s", idStr)
		c.Close()
		return
	}
	installationId := uint(id64)

	defer func() {
		installationMu.Lock()
		delete(installationClients[installationId], c)
		if len(installationClients[installationId]) == 0 {
			delete(installationClients, installationId)
		}
		installationMu.Unlock()
		c.Close()
	}()

	installationMu.Lock()
	if installationClients[installationId] == nil {
		installationClients[installationId] = make(map[*websocket.Conn]bool)
	}
	installationClients[installationId][c] = true
	installationMu.Unlock()

	// Push the current state so the client renders without waiting for the
	// next event.
	var installation model.Installation
	if err := database.DB.
		Preload("EquipmentList").
		Preload("StatusHistory").
		First(&installation, installationId).Error; err == nil {
		c.WriteJSON(installation)
	}

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("installation:%d", installationId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		installationMu.Lock()
		for conn := range installationClients[installationId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(installationClients[installationId], conn)
			}
		}
		installationMu.Unlock()
	}
}

// PublishInstallationUpdate fans a status change out to subscribed clients.
// Best effort: a down redis never fails the originating request.
func PublishInstallationUpdate(installationId uint, status string) {
	payload, err := json.Marshal(map[string]interface{}{
		"installationId": installationId,
		"status":         status,
	})
	if err != nil {
		return
	}

	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("installation:%d", installationId),
		payload,
	).Err(); err != nil {
		log.Printf("failed to publish installation update: %v", err)
	}
}
