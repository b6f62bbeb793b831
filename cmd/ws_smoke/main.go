package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"kanban_backend/internal/service"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

// ws_smoke connects to the notification stream as one user and prints every
// event until interrupted or until -duration elapses.
func main() {
	_ = godotenv.Load()

	userID := flag.Int64("user", 0, "user id to mint a token for (requires JWT_SECRET)")
	token := flag.String("token", os.Getenv("WS_TOKEN"), "existing JWT; overrides -user")
	duration := flag.Duration("duration", 30*time.Second, "how long to listen")
	flag.Parse()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	if *token == "" {
		if *userID <= 0 {
			log.Fatal("pass -token or -user")
		}
		if err := service.InitJWT(os.Getenv("JWT_SECRET")); err != nil {
			log.Fatal(err)
		}
		t, err := service.GenerateJWT(*userID)
		if err != nil {
			log.Fatalf("gen token: %v", err)
		}
		*token = t
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, url.QueryEscape(*token))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		log.Fatalf("write ping: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	msgs := make(chan []byte)
	go func() {
		defer close(msgs)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read error: %v", err)
				return
			}
			msgs <- msg
		}
	}()

	deadline := time.After(*duration)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			log.Printf("got: %s", msg)
		case <-deadline:
			log.Println("smoke test finished")
			return
		case <-interrupt:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
