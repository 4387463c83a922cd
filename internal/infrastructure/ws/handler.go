package ws

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/net/websocket"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/metrics"
)

// ReportBuilder builds the exchange report for a day span
type ReportBuilder interface {
	BuildReport(ctx context.Context, days int) (string, error)
}

// Journal durably appends broadcast reports
type Journal interface {
	Append(text string) error
}

const exchangeFailureNotice = "exchange rates are unavailable right now, try again later"

// Handler owns the per-session receive loop: it registers sessions on
// connect, dispatches each inbound message, and cleans up on disconnect.
type Handler struct {
	registry *Registry
	hub      *Hub
	reports  ReportBuilder
	journal  Journal
	logger   logger.Logger
	metrics  *metrics.RelayMetrics
	nameGen  func() string
}

// NewHandler creates a connection handler. Metrics may be nil.
func NewHandler(registry *Registry, hub *Hub, reports ReportBuilder, journal Journal, nameGen func() string, log logger.Logger, m *metrics.RelayMetrics) *Handler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &Handler{
		registry: registry,
		hub:      hub,
		reports:  reports,
		journal:  journal,
		logger:   log,
		metrics:  m,
		nameGen:  nameGen,
	}
}

// RegisterRoutes registers the relay routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Handle("/ws", websocket.Handler(h.handleConn))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	h.logger.Info("Relay routes registered", map[string]interface{}{
		"routes": []string{"GET /ws", "GET /healthz"},
	})
}

// handleConn runs one session from registration to cleanup
func (h *Handler) handleConn(conn *websocket.Conn) {
	session := NewSession(uuid.New().String(), h.nameGen(), wsTransport{conn: conn})

	h.registry.Register(session)
	if h.metrics != nil {
		h.metrics.SessionsActive.Set(float64(h.registry.Len()))
	}
	h.logger.Info("Session connected", map[string]interface{}{
		"session_id": session.ID,
		"name":       session.Name,
		"remote":     conn.Request().RemoteAddr,
	})
	h.hub.Broadcast(session.Name + " joined the chat")

	defer func() {
		h.registry.Unregister(session)
		if h.metrics != nil {
			h.metrics.SessionsActive.Set(float64(h.registry.Len()))
		}
		_ = session.Close()
		h.logger.Info("Session disconnected", map[string]interface{}{
			"session_id": session.ID,
			"name":       session.Name,
		})
		h.hub.Broadcast(session.Name + " left the chat")
	}()

	ctx := conn.Request().Context()
	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Debug("Receive failed", map[string]interface{}{
					"session_id": session.ID,
					"error":      err.Error(),
				})
			}
			return
		}

		h.dispatch(ctx, session, raw)
	}
}

// dispatch routes one inbound message to the chat or exchange path
func (h *Handler) dispatch(ctx context.Context, session *Session, raw string) {
	msg := entity.ParseMessage(raw)

	switch msg.Kind {
	case entity.KindExchange:
		h.handleExchange(ctx, session, msg.Days)
	default:
		h.hub.Broadcast(session.Name + ": " + raw)
	}
}

// handleExchange fetches the report, broadcasts it, and journals it. A
// fetch failure is reported to the requesting session only.
func (h *Handler) handleExchange(ctx context.Context, session *Session, days int) {
	start := time.Now()
	report, err := h.reports.BuildReport(ctx, days)
	if h.metrics != nil {
		h.metrics.RateFetchDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		h.logger.Error("Exchange report failed", map[string]interface{}{
			"session_id": session.ID,
			"days":       days,
			"error":      err.Error(),
		})
		if h.metrics != nil {
			h.metrics.ExchangeRequestsTotal.WithLabelValues("error").Inc()
		}
		if sendErr := session.Send(exchangeFailureNotice); sendErr != nil {
			h.logger.Debug("Failed to deliver failure notice", map[string]interface{}{
				"session_id": session.ID,
				"error":      sendErr.Error(),
			})
		}
		return
	}

	if h.metrics != nil {
		h.metrics.ExchangeRequestsTotal.WithLabelValues("ok").Inc()
	}
	h.hub.Broadcast(report)

	if err := h.journal.Append(report); err != nil {
		h.logger.Error("Failed to journal exchange report", map[string]interface{}{
			"error": err.Error(),
		})
		if h.metrics != nil {
			h.metrics.JournalWriteErrorsTotal.Inc()
		}
	}
}
