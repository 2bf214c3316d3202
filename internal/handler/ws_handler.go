package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/pruve-api/internal/middleware"
	"github.com/yourusername/pruve-api/internal/websocket"
)

// WSHandler подключает клиентов к живым результатам опросов
type WSHandler struct {
	pollService PollService
	wsManager   *websocket.Manager
	upgrader    gorillaws.Upgrader
	bufferSize  int
}

// NewWSHandler создает новый обработчик WebSocket.
// allowedOrigins синхронизирован с настройками CORS.
func NewWSHandler(pollService PollService, wsManager *websocket.Manager, allowedOrigins []string, bufferSize int) *WSHandler {
	return &WSHandler{
		pollService: pollService,
		wsManager:   wsManager,
		upgrader:    newUpgrader(allowedOrigins),
		bufferSize:  bufferSize,
	}
}

func newUpgrader(allowedOrigins []string) gorillaws.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Пустой Origin - не браузерный клиент (мобильное приложение, curl)
			if origin == "" {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			if _, ok := allowed["*"]; ok {
				return true
			}
			log.Printf("[WSHandler] Отклонен неразрешенный origin: %s", origin)
			return false
		},
	}
}

// HandlePollResults подписывает клиента на обновления результатов опроса
// GET /ws/polls/:id
func (h *WSHandler) HandlePollResults(c *gin.Context) {
	pollID := c.MustGet("pollID").(uint)

	// Проверяем опрос до апгрейда, чтобы вернуть обычный HTTP-статус
	counts, err := h.pollService.LiveCounts(pollID)
	if err != nil {
		handleError(c, "WSHandler", err)
		return
	}

	userID := c.Query("user_id")
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			userID = strconv.FormatUint(uint64(id), 10)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		log.Printf("[WSHandler] Ошибка апгрейда соединения для опроса %d: %v", pollID, err)
		return
	}

	client := websocket.NewClient(h.wsManager.Hub(), conn, pollID, userID, h.bufferSize)
	client.Start()

	if !h.wsManager.SendSnapshot(client, counts) {
		log.Printf("[WSHandler] Не удалось отправить снимок результатов клиенту %s", client.ConnectionID)
	}
}
