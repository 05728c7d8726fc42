package core

// Message is a single opaque blob held by a room.
// Content is owned by the store and zeroed before the message leaves it.
type Message struct {
	Content   []byte
	Timestamp int64
}

// wipe overwrites the message content with zeros. Every path that removes a
// message from the store goes through here.
func wipe(m *Message) {
	clear(m.Content)
}
