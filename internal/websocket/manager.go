package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/metrics"
)

// Event представляет структуру WebSocket-сообщения
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// PollResultsPayload - данные события с текущими результатами опроса
type PollResultsPayload struct {
	PollID         uint                     `json:"poll_id"`
	Options        []entity.OptionVoteCount `json:"options"`
	TotalVoteCount int                      `json:"total_vote_count"`
}

// ClusterMessage - сообщение, которым инстансы обмениваются через Pub/Sub
type ClusterMessage struct {
	InstanceID string          `json:"instance_id"`
	PollID     uint            `json:"poll_id"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Manager рассылает live-результаты опросов локальным клиентам и другим инстансам
type Manager struct {
	hub        *Hub
	pubsub     PubSubProvider
	instanceID string
	channel    string
	metrics    *metrics.Metrics
}

// NewManager создает новый менеджер WebSocket.
// Если pubsub равен nil, используется NoOpPubSub (одиночный режим).
func NewManager(hub *Hub, pubsub PubSubProvider, instanceID, channel string, m *metrics.Metrics) *Manager {
	if pubsub == nil {
		pubsub = &NoOpPubSub{}
	}
	return &Manager{
		hub:        hub,
		pubsub:     pubsub,
		instanceID: instanceID,
		channel:    channel,
		metrics:    m,
	}
}

// Hub возвращает локальный хаб менеджера
func (m *Manager) Hub() *Hub {
	return m.hub
}

// BroadcastPollResults отправляет POLL_RESULTS_UPDATE подписчикам опроса на этом инстансе
// и публикует его для остальных инстансов
func (m *Manager) BroadcastPollResults(pollID uint, counts []entity.OptionVoteCount) error {
	message, err := encodeResults(POLL_RESULTS_UPDATE, pollID, counts)
	if err != nil {
		return err
	}

	sent := m.hub.BroadcastToPoll(pollID, message)
	m.metrics.WSMessagesSent(POLL_RESULTS_UPDATE, sent)

	clusterMsg, err := json.Marshal(ClusterMessage{
		InstanceID: m.instanceID,
		PollID:     pollID,
		Payload:    message,
		Timestamp:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cluster message: %w", err)
	}
	if err := m.pubsub.Publish(m.channel, clusterMsg); err != nil {
		log.Printf("[WebSocketManager] Ошибка публикации результатов опроса %d: %v", pollID, err)
		return err
	}
	return nil
}

// SendSnapshot отправляет клиенту текущие результаты опроса сразу после подключения
func (m *Manager) SendSnapshot(client *Client, counts []entity.OptionVoteCount) bool {
	message, err := encodeResults(POLL_SNAPSHOT, client.PollID, counts)
	if err != nil {
		log.Printf("[WebSocketManager] Ошибка сериализации снимка опроса %d: %v", client.PollID, err)
		return false
	}
	ok := m.hub.SendToClient(client, message)
	if ok {
		m.metrics.WSMessagesSent(POLL_SNAPSHOT, 1)
	}
	return ok
}

// Start подписывается на канал кластера и пересылает чужие сообщения локальным клиентам.
// Блокируется до отмены ctx или закрытия подписки.
func (m *Manager) Start(ctx context.Context) error {
	msgCh, err := m.pubsub.Subscribe(ctx, m.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to cluster channel %s: %w", m.channel, err)
	}
	log.Printf("[WebSocketManager] Инстанс %s слушает канал %s", m.instanceID, m.channel)

	for raw := range msgCh {
		m.handleClusterMessage(raw)
	}
	return nil
}

// Close освобождает ресурсы Pub/Sub
func (m *Manager) Close() error {
	return m.pubsub.Close()
}

func (m *Manager) handleClusterMessage(raw []byte) {
	var msg ClusterMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("[WebSocketManager] Некорректное сообщение кластера: %v", err)
		return
	}
	if msg.InstanceID == m.instanceID {
		return
	}
	sent := m.hub.BroadcastToPoll(msg.PollID, msg.Payload)
	m.metrics.WSMessagesSent(POLL_RESULTS_UPDATE, sent)
}

func encodeResults(eventType string, pollID uint, counts []entity.OptionVoteCount) ([]byte, error) {
	if counts == nil {
		counts = []entity.OptionVoteCount{}
	}
	var total int
	for _, c := range counts {
		total += c.VoteCount
	}
	message, err := json.Marshal(Event{
		Type: eventType,
		Data: PollResultsPayload{
			PollID:         pollID,
			Options:        counts,
			TotalVoteCount: total,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return message, nil
}
