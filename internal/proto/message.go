package proto

const (
	ProtocolVersion = 1

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventSnapshot = "snapshot"
)

// SendRequest is the body of POST /send.
type SendRequest struct {
	Message string `json:"message"`
	RoomID  string `json:"room_id"`
}

// Outbound is the envelope for messages sent to WebSocket watchers.
type Outbound struct {
	Type    string `json:"type"`
	Event   string `json:"event,omitempty"`
	Version int    `json:"v,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// EventMessage is one relayed blob as seen by a watcher.
type EventMessage struct {
	Text string `json:"text"`
	TS   int64  `json:"ts"`
	Time string `json:"time"`
}

// EventSnapshotData carries the full current contents of a room.
type EventSnapshotData struct {
	Room     string         `json:"room"`
	Messages []EventMessage `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
