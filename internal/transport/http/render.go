package http

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/vovakirdan/burnroom-server/internal/core"
)

const (
	roomIDPlaceholder   = "room_id_PLACEHOLDER"
	messagesPlaceholder = "<!-- Messages will be dynamically inserted here -->"
	emptyRoomHTML       = "<p>No messages in this room yet.</p>"
)

// formatTimestamp renders unix seconds as UTC HH:MM:SS.
func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("15:04:05")
}

// renderMessages builds one escaped paragraph per message.
func renderMessages(roomID string, msgs []core.Message) string {
	room := html.EscapeString(roomID)

	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "<p>[%s] %s: %s</p>", formatTimestamp(m.Timestamp), room, html.EscapeString(string(m.Content)))
	}
	return b.String()
}

// renderIndex fills the page template with the room id and its messages.
// Only a room the store has never seen gets the placeholder text.
func renderIndex(page, roomID string, msgs []core.Message, known bool) string {
	body := emptyRoomHTML
	if known {
		body = renderMessages(roomID, msgs)
	}
	page = strings.ReplaceAll(page, roomIDPlaceholder, html.EscapeString(roomID))
	return strings.Replace(page, messagesPlaceholder, body, 1)
}
