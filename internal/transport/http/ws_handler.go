package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/burnroom-server/internal/core"
	"github.com/vovakirdan/burnroom-server/internal/proto"
)

// WSHandler streams room snapshots to WebSocket watchers.
// It polls the relay and pushes a fresh snapshot whenever the room changes.
type WSHandler struct {
	relay    *core.Relay
	interval time.Duration
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(relay *core.Relay, interval time.Duration, logger *zerolog.Logger) *WSHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &WSHandler{relay: relay, interval: interval, log: logger}
}

// ServeHTTP upgrades the connection and pushes snapshots until the client leaves.
// GET /ws?room_id=
func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	query := r.URL.Query()
	if !query.Has("room_id") {
		stdhttp.Error(w, "Missing room_id", stdhttp.StatusBadRequest)
		return
	}
	roomID := query.Get("room_id")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	// Watchers never send; CloseRead handles control frames and cancels ctx on close.
	ctx := conn.CloseRead(r.Context())

	err = h.pushLoop(ctx, conn, roomID)

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws watcher closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) pushLoop(ctx context.Context, conn *websocket.Conn, roomID string) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	sent := false
	var lastRev uint64
	for {
		rev := h.relay.Revision(roomID)
		if !sent || rev != lastRev {
			if err := wsjson.Write(ctx, conn, snapshotOutbound(roomID, h.relay.Messages(roomID))); err != nil {
				return err
			}
			sent = true
			lastRev = rev
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func snapshotOutbound(roomID string, msgs []core.Message) proto.Outbound {
	out := make([]proto.EventMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, proto.EventMessage{
			Text: string(m.Content),
			TS:   m.Timestamp,
			Time: formatTimestamp(m.Timestamp),
		})
	}
	return proto.Outbound{
		Type:    proto.OutboundTypeEvent,
		Event:   proto.EventSnapshot,
		Version: proto.ProtocolVersion,
		Data: proto.EventSnapshotData{
			Room:     roomID,
			Messages: out,
		},
	}
}
