package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/services"
)

type StreamHandler struct {
	manager  *services.StreamManager
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewStreamHandler(manager *services.StreamManager, logger *logrus.Logger) *StreamHandler {
	return &StreamHandler{
		manager: manager,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

// Control messages arrive as text frames; audio chunks arrive as binary
// frames with no envelope.
type wsClientMsg struct {
	Type string `json:"type"` // start_stream|stop_stream
	Lang string `json:"lang"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

// wsSink delivers stream events to one connection.
type wsSink struct {
	conn   *wsConn
	logger *logrus.Logger
}

func (s *wsSink) Ready() {
	_ = s.conn.writeJSON(gin.H{"type": "stream_ready"})
}

func (s *wsSink) Partial(text string) {
	_ = s.conn.writeJSON(gin.H{"type": "transcription_partial", "text": text})
}

func (s *wsSink) Final(result *models.VoiceFormResult) {
	_ = s.conn.writeJSON(gin.H{"type": "transcription_final", "transcript": result.Transcript, "data": result.Data})
}

func (s *wsSink) Error(message string) {
	_ = s.conn.writeJSON(gin.H{"type": "error", "message": message})
}

// VoiceWS runs one live dictation connection. Each websocket gets its own
// session id; read-loop exit without a stop is treated as abandonment.
func (h *StreamHandler) VoiceWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	wc := &wsConn{c: conn}
	sink := &wsSink{conn: wc, logger: h.logger}

	log := h.logger.WithField("session", id)
	log.Info("voice ws connected")

	// Disconnect is a no-op after a clean stop.
	defer h.manager.Disconnect(id)

	for {
		mt, data, rerr := conn.ReadMessage()
		if rerr != nil {
			log.WithError(rerr).Debug("voice ws closed")
			return
		}

		if mt == websocket.BinaryMessage {
			h.manager.Chunk(id, data)
			continue
		}

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(gin.H{"type": "error", "message": "invalid json"})
			continue
		}

		switch msg.Type {
		case "start_stream":
			h.manager.Start(id, msg.Lang, sink)

		case "stop_stream":
			h.manager.Stop(id)

		default:
			_ = wc.writeJSON(gin.H{"type": "error", "message": "unknown message type"})
		}
	}
}
