// Package metrics собирает метрики приложения в отдельном реестре Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

// Исходы операций записи
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics хранит коллекторы приложения. Все методы безопасны для nil-получателя,
// поэтому сервисы в тестах создаются без метрик.
type Metrics struct {
	registry *prometheus.Registry

	pollsCreated  prometheus.Counter
	pollVotes     *prometheus.CounterVec
	matchVotes    *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	wsConnections prometheus.Gauge
	wsMessages    *prometheus.CounterVec
}

// New создает реестр и регистрирует все коллекторы
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pollsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pruve",
			Name:      "polls_created_total",
			Help:      "Количество созданных опросов.",
		}),
		pollVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pruve",
			Name:      "poll_votes_total",
			Help:      "Попытки голосования в опросах по исходу.",
		}, []string{"outcome"}),
		matchVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pruve",
			Name:      "match_votes_total",
			Help:      "Попытки голосования за команду в матче по исходу.",
		}, []string{"outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pruve",
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pruve",
			Name:      "ws_active_connections",
			Help:      "Активные WebSocket-подключения к live-результатам.",
		}),
		wsMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pruve",
			Name:      "ws_messages_sent_total",
			Help:      "Отправленные WebSocket-сообщения по типу.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pollsCreated,
		m.pollVotes,
		m.matchVotes,
		m.httpDuration,
		m.wsConnections,
		m.wsMessages,
	)
	return m
}

// Registry возвращает реестр для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler возвращает HTTP-обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PollCreated учитывает созданный опрос
func (m *Metrics) PollCreated() {
	if m == nil {
		return
	}
	m.pollsCreated.Inc()
}

// PollVote учитывает попытку голосования в опросе
func (m *Metrics) PollVote(err error) {
	if m == nil {
		return
	}
	m.pollVotes.WithLabelValues(Outcome(err)).Inc()
}

// MatchVote учитывает попытку голосования за команду
func (m *Metrics) MatchVote(err error) {
	if m == nil {
		return
	}
	m.matchVotes.WithLabelValues(Outcome(err)).Inc()
}

// ObserveHTTP записывает длительность обработанного запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// WSConnected учитывает новое WebSocket-подключение
func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

// WSDisconnected учитывает закрытое WebSocket-подключение
func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

// WSMessagesSent учитывает разосланные сообщения заданного типа
func (m *Metrics) WSMessagesSent(msgType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.wsMessages.WithLabelValues(msgType).Add(float64(count))
}

// Outcome переводит ошибку операции в метку исхода
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, apperrors.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, apperrors.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
