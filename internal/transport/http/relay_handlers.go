package http

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/burnroom-server/internal/config"
	"github.com/vovakirdan/burnroom-server/internal/core"
	"github.com/vovakirdan/burnroom-server/internal/proto"
)

// bodyOverhead leaves room for JSON framing and escaping around the message.
const bodyOverhead = 64 * 1024

// RelayHandlers provides HTTP handlers for sending and reading room messages.
type RelayHandlers struct {
	relay     *core.Relay
	staticDir string
	maxBody   int64
	log       *zerolog.Logger
}

// NewRelayHandlers creates a new relay handlers instance.
func NewRelayHandlers(relay *core.Relay, cfg *config.Config, logger *zerolog.Logger) *RelayHandlers {
	maxMessage := cfg.Limits.MaxMessageBytes
	if maxMessage <= 0 {
		maxMessage = core.DefaultMaxMessageBytes
	}
	return &RelayHandlers{
		relay:     relay,
		staticDir: cfg.StaticDir,
		maxBody:   int64(maxMessage)*2 + bodyOverhead,
		log:       logger,
	}
}

// Send admits a message into a room.
// POST /send
func (h *RelayHandlers) Send(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	var req proto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "Invalid message (too long or storage full).",
				Code:  core.ErrCodeInvalidInput,
			})
			return
		}
		h.log.Debug().Err(err).Msg("invalid send request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeInvalidInput})
		return
	}

	roomID := strings.TrimSpace(req.RoomID)
	message := strings.TrimSpace(req.Message)

	if err := h.relay.Send(roomID, message); err != nil {
		status, body := errorResponseFor(err)
		h.log.Debug().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("code", body.Code).
			Msg("send rejected")
		c.JSON(status, body)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?room_id="+url.QueryEscape(roomID))
}

// Messages renders the current room contents as an HTML fragment.
// GET /messages?room_id=
func (h *RelayHandlers) Messages(c *gin.Context) {
	roomID, ok := c.GetQuery("room_id")
	if !ok {
		c.String(http.StatusBadRequest, "Missing room_id")
		return
	}

	fragment := renderMessages(roomID, h.relay.Messages(roomID))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

// Index serves the chat page for a room.
// GET /?room_id=
func (h *RelayHandlers) Index(c *gin.Context) {
	page, err := os.ReadFile(filepath.Join(h.staticDir, "index.html"))
	if err != nil {
		h.log.Error().Err(err).Str("static_dir", h.staticDir).Msg("failed to read page template")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
		return
	}

	roomID := c.Query("room_id")
	msgs, known := h.relay.Room(roomID)
	html := renderIndex(string(page), roomID, msgs, known)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Health reports liveness and store counters.
// GET /health
func (h *RelayHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"store":  h.relay.Stats(),
	})
}
