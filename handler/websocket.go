package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"game_store/config"
	"game_store/database"
	"game_store/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	orderClients = make(map[uint]map[*websocket.Conn]bool)
	mu           sync.Mutex
)

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type orderStatusMessage struct {
	OrderId uint   `json:"orderId"`
	Status  string `json:"status"`
}

// PublishOrderStatus đẩy trạng thái mới của đơn lên Redis để các
// websocket đang chờ ở trang checkout nhận được ngay.
func PublishOrderStatus(orderId uint, status string) {
	payload, err := json.Marshal(orderStatusMessage{OrderId: orderId, Status: status})
	if err != nil {
		return
	}
	if err := getRedis().Publish(
		context.Background(),
		fmt.Sprintf("order:%d", orderId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish trạng thái đơn %d: %v", orderId, err)
	}
}

// OrderStatusWebsocket đẩy trạng thái đơn hàng realtime cho trang checkout.
func OrderStatusWebsocket(c *websocket.Conn) {
	orderIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(orderIdStr, 10, 64)
	orderId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if orderClients[orderId] != nil {
			delete(orderClients[orderId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if orderClients[orderId] == nil {
		orderClients[orderId] = make(map[*websocket.Conn]bool)
	}
	orderClients[orderId][c] = true
	mu.Unlock()

	// Gửi trạng thái hiện tại lần đầu
	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err == nil {
		c.WriteJSON(orderStatusMessage{OrderId: order.ID, Status: order.Status})
	}

	pubsub := getRedis().Subscribe(
		context.Background(),
		fmt.Sprintf("order:%d", orderId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range orderClients[orderId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(orderClients[orderId], conn)
			}
		}
		mu.Unlock()
	}
}
