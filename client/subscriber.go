package client

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"go-restaurant-backoffice/logger"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Handler receives each decoded event from the subscribed topic.
type Handler func(event string, payload json.RawMessage)

// OnConnect runs after every successful (re)connect, before events flow.
// The server keeps no backlog, so this is where full state is re-fetched.
type OnConnect func()

// Subscriber maintains a WebSocket subscription to one topic with a
// reconnect loop: bounded exponential backoff, unlimited attempts.
type Subscriber struct {
	url       string
	handler   Handler
	onConnect OnConnect
	log       *logger.Logger
	done      chan struct{}
	stopped   chan struct{}
}

func NewSubscriber(url string, handler Handler, onConnect OnConnect, log *logger.Logger) *Subscriber {
	return &Subscriber{
		url:       url,
		handler:   handler,
		onConnect: onConnect,
		log:       log.WithComponent("subscriber"),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start launches the connect/read loop in a goroutine.
func (s *Subscriber) Start() {
	go s.run()
}

// Close tears down the subscription and waits for the loop to exit.
func (s *Subscriber) Close() {
	close(s.done)
	<-s.stopped
}

func (s *Subscriber) run() {
	defer close(s.stopped)

	backoff := initialBackoff
	for {
		select {
		case <-s.done:
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
		if err != nil {
			s.log.Warn("dial failed, retrying", "url", s.url, "backoff", backoff, "error", err)
			select {
			case <-s.done:
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		s.log.Info("connected", "url", s.url)
		if s.onConnect != nil {
			s.onConnect()
		}

		s.readLoop(conn)
		conn.Close()
	}
}

func (s *Subscriber) readLoop(conn *websocket.Conn) {
	// Unblock the read when Close is called.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var message struct {
			Event   string          `json:"event"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&message); err != nil {
			select {
			case <-s.done:
			default:
				s.log.Warn("connection lost", "url", s.url, "error", err)
			}
			return
		}
		s.handler(message.Event, message.Payload)
	}
}
