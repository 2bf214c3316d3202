package websocket

// Типы сообщений live-результатов
const (
	// POLL_SNAPSHOT отправляется клиенту сразу после подписки на опрос
	POLL_SNAPSHOT = "POLL_SNAPSHOT"

	// POLL_RESULTS_UPDATE сообщает о новых голосах в опросе
	POLL_RESULTS_UPDATE = "POLL_RESULTS_UPDATE"
)
