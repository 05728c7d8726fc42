package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/burnroom-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	base := flag.String("base", "http://localhost:8000", "server base URL")
	room := flag.String("room", "smoke-room-01", "room id (at least 8 characters)")
	text := flag.String("text", "-----BEGIN ENCRYPTED MESSAGE-----c21va2U=-----END ENCRYPTED MESSAGE-----", "armored payload to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	wsURL, err := url.Parse(*base)
	if err != nil {
		return fmt.Errorf("parse base: %w", err)
	}
	if wsURL.Scheme == "https" {
		wsURL.Scheme = "wss"
	} else {
		wsURL.Scheme = "ws"
	}
	wsURL.Path = "/ws"
	wsURL.RawQuery = url.Values{"room_id": {*room}}.Encode()

	conn, _, err := websocket.Dial(ctx, wsURL.String(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	body, err := json.Marshal(proto.SendRequest{RoomID: *room, Message: *text})
	if err != nil {
		return fmt.Errorf("marshal send: %w", err)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Post(*base+"/send", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("send: unexpected status %d", resp.StatusCode)
	}

	for {
		var outbound struct {
			Type  string                  `json:"type"`
			Event string                  `json:"event"`
			Data  proto.EventSnapshotData `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("Received outbound: type=%s event=%s messages=%d\n", outbound.Type, outbound.Event, len(outbound.Data.Messages))

		for _, m := range outbound.Data.Messages {
			if m.Text == *text {
				fmt.Printf("Snapshot contains sent message: room=%s time=%s\n", outbound.Data.Room, m.Time)
				return nil
			}
		}
	}
}
