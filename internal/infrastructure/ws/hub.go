package ws

import (
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/metrics"
)

// Hub fans a message out to every registered session
type Hub struct {
	registry *Registry
	logger   logger.Logger
	metrics  *metrics.RelayMetrics
}

// NewHub creates a hub over the given registry. Metrics may be nil.
func NewHub(registry *Registry, log logger.Logger, m *metrics.RelayMetrics) *Hub {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &Hub{
		registry: registry,
		logger:   log,
		metrics:  m,
	}
}

// Broadcast sends text to every session in the current snapshot. A failure
// on one session is contained: the session is closed and dropped from the
// registry asynchronously, and delivery to the others continues.
func (h *Hub) Broadcast(text string) {
	for _, session := range h.registry.Snapshot() {
		if err := session.Send(text); err != nil {
			h.logger.Warn("Dropping session after failed send", map[string]interface{}{
				"session_id": session.ID,
				"name":       session.Name,
				"error":      err.Error(),
			})
			if h.metrics != nil {
				h.metrics.SendFailuresTotal.Inc()
			}
			go h.drop(session)
		}
	}

	if h.metrics != nil {
		h.metrics.MessagesBroadcastTotal.Inc()
	}
}

// drop closes a broken session and removes it from the registry
func (h *Hub) drop(session *Session) {
	if err := session.Close(); err != nil {
		h.logger.Debug("Error closing dropped session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
	h.registry.Unregister(session)
	if h.metrics != nil {
		h.metrics.SessionsActive.Set(float64(h.registry.Len()))
	}
}
