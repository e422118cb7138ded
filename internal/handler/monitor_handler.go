package handler

import (
	"encoding/json"
	"net/http"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/service"
	ws "github.com/examly/examly-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams accepted submissions to examiner dashboards over
// WebSocket. Events originate from the exam's Redis PubSub channel, so the
// stream works across multiple server instances.
type MonitorHandler struct {
	rdb         *redis.Client
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		rdb:         rdb,
		examService: examService,
		log:         log.With().Str("component", "monitor_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// GET /ws/v1/admin/exams/:exam_id/monitor?token=...
// Upgrades the connection and forwards submission events until the client
// disconnects.
func (h *MonitorHandler) Stream(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exam ID"})
		return
	}

	// The exam must exist before a subscription is opened.
	if _, err := h.examService.GetByID(c.Request.Context(), examID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("exam_id", examID.String()).Logger()
	wsLog.Info().Msg("Monitor connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.ExamMonitorChannel(examID.String()))
	defer sub.Close()

	// Reader goroutine: answers pings and unblocks the forward loop when
	// the client goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}

			switch msg.Action {
			case ws.ActionPing:
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
				_ = ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			return

		case msg, ok := <-events:
			if !ok {
				return
			}

			var payload json.RawMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				wsLog.Error().Err(err).Msg("Invalid monitor payload")
				continue
			}

			if err := ws.WriteTyped(conn, ws.SubmissionEvent{
				Event:   ws.EventSubmission,
				Payload: payload,
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Monitor write failed")
				return
			}
		}
	}
}
