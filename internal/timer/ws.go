package timer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
)

const (
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

type commandHandler interface {
	Handle(ctx context.Context, cmd Command) (*State, error)
	Subscribe() (<-chan Message, func())
}

// WSHandler relays timer commands and notifications over a websocket.
type WSHandler struct {
	timers   commandHandler
	upgrader websocket.Upgrader
}

func NewWSHandler(timers commandHandler, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		timers: timers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (handler *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timer.ws")
	defer span.End()

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already replied with an http error
		log.Errorf("timer ws: upgrade: %s", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := handler.timers.Subscribe()
	defer unsubscribe()

	// replies addressed to this connection only, e.g. command errors
	direct := make(chan Message, 8)
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		handler.writeLoop(conn, updates, direct, readerDone)
	}()

	handler.readLoop(ctx, conn, direct)
	close(readerDone)
	<-writerDone
}

func (handler *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, direct chan<- Message) {
	conn.SetReadLimit(maxFrameSize)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("timer ws: read: %s", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			reply(direct, Message{Type: TypeError, Error: "invalid message"})
			continue
		}

		if _, err := handler.timers.Handle(ctx, cmd); err != nil {
			if errors.Is(err, ErrManagerClosed) {
				return
			}
			log.Debugf("timer ws: %s [%s]: %s", cmd.Type, cmd.TimerID, err)
			reply(direct, Message{Type: TypeError, TimerID: cmd.TimerID, Error: err.Error()})
		}
	}
}

func (handler *WSHandler) writeLoop(conn *websocket.Conn, updates <-chan Message, direct <-chan Message, readerDone <-chan struct{}) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	write := func(msg Message) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("timer ws: write %s: %s", msg.Type, err)
			return false
		}
		return true
	}

	for {
		select {
		case <-readerDone:
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return
		case msg, ok := <-updates:
			if !ok {
				// manager shut down
				_ = conn.Close()
				return
			}
			if !write(msg) {
				_ = conn.Close()
				return
			}
		case msg := <-direct:
			if !write(msg) {
				_ = conn.Close()
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}

func reply(direct chan<- Message, msg Message) {
	select {
	case direct <- msg:
	default:
		log.Warnf("timer ws: dropping %s reply", msg.Type)
	}
}
