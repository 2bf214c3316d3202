package websocket

import (
	"log"
	"sync"

	"github.com/yourusername/pruve-api/internal/metrics"
)

// Hub хранит подключенных клиентов, сгруппированных по опросам
type Hub struct {
	mu      sync.RWMutex
	rooms   map[uint]map[*Client]struct{}
	metrics *metrics.Metrics
}

// NewHub создает пустой хаб
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		rooms:   make(map[uint]map[*Client]struct{}),
		metrics: m,
	}
}

// Register добавляет клиента в комнату его опроса
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.PollID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.PollID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.WSConnected()
	log.Printf("[Hub] Клиент %s подписан на опрос %d", c.ConnectionID, c.PollID)
}

// Unregister удаляет клиента и закрывает его канал отправки. Повторный вызов безопасен.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.PollID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, present := room[c]; !present {
		h.mu.Unlock()
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.PollID)
	}
	close(c.send)
	h.mu.Unlock()

	h.metrics.WSDisconnected()
	log.Printf("[Hub] Клиент %s отписан от опроса %d", c.ConnectionID, c.PollID)
}

// BroadcastToPoll отправляет сообщение всем локальным подписчикам опроса.
// Клиенты с переполненным буфером отключаются. Возвращает число доставленных сообщений.
func (h *Hub) BroadcastToPoll(pollID uint, message []byte) int {
	var slow []*Client
	sent := 0

	h.mu.RLock()
	for c := range h.rooms[pollID] {
		select {
		case c.send <- message:
			sent++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("[Hub] Буфер клиента %s переполнен, отключаем", c.ConnectionID)
		h.Unregister(c)
	}
	return sent
}

// SendToClient отправляет сообщение одному клиенту, если он еще подключен
func (h *Hub) SendToClient(c *Client, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.rooms[c.PollID][c]; !ok {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// ClientCount возвращает количество подписчиков опроса
func (h *Hub) ClientCount(pollID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[pollID])
}
