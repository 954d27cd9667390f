// Package main runs a demo WebSocket client for the quote feed: it subscribes
// to /v1/quotes/ws, posts an enquiry, and prints the events that come back.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Connect WS
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/quotes/ws"}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	// connection_init
	if err := c.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		log.Fatal(err)
	}
	// subscribe to the quote feed
	if err := c.WriteJSON(wsMessage{Type: "subscribe", ID: "1"}); err != nil {
		log.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m wsMessage
			if err := c.ReadJSON(&m); err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("WS <- %s: %s", m.Type, string(m.Payload))
		}
	}()

	// Post an enquiry to trigger a quote.priced event
	time.Sleep(500 * time.Millisecond)
	body := []byte(`{"subject":"Quote request","body":"4 pallets from CO4 9TD, total 950 kg, deliver to BHX please, tail lift needed"}`)
	req, _ := http.NewRequest(http.MethodPost, base+"/v1/quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var quoteResp struct {
		Quote struct {
			ID    string  `json:"id"`
			Total float64 `json:"total"`
		} `json:"quote"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		log.Fatal(err)
	}
	log.Printf("Quote %s priced at £%.2f", quoteResp.Quote.ID, quoteResp.Quote.Total)

	// Wait briefly to receive the feed event
	select {
	case <-time.After(2 * time.Second):
	case <-done:
	}
}
