package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/httpapi/internal"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/httpserver"

	"github.com/gorilla/websocket"
)

const (
	_wsReadLimit    = 512
	_wsPongWait     = 60 * time.Second
	_wsPingPeriod   = 54 * time.Second
	_wsWriteTimeout = 10 * time.Second
	_wsBacklog      = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are left to the CORS layer.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewDispatchEventsWebSocketController subscribes right away so no outcome
// published after construction is missed.
func NewDispatchEventsWebSocketController(broker async.InternalBroker) (*DispatchEventsWebSocketController, error) {
	dispatches, err := broker.Subscribe(async.BrokerTopicName(domain.TopicDispatchEvents))
	if err != nil {
		return nil, err
	}
	telemetry, err := broker.Subscribe(async.BrokerTopicName(domain.TopicTelemetryEvents))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wsc := &DispatchEventsWebSocketController{
		broker:     broker,
		dispatches: dispatches,
		telemetry:  telemetry,
		clients:    make(map[*websocket.Conn]struct{}),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan internal.StreamMessage, _wsBacklog),
		ctx:        ctx,
		cancel:     cancel,
	}

	wsc.wg.Add(1)
	go wsc.run()

	return wsc, nil
}

var _ httpserver.Controller = (*DispatchEventsWebSocketController)(nil)

// DispatchEventsWebSocketController fans dispatch outcomes and telemetry
// readings out to every connected websocket client.
type DispatchEventsWebSocketController struct {
	broker     async.InternalBroker
	dispatches async.Subscription
	telemetry  async.Subscription
	clients    map[*websocket.Conn]struct{}
	clientsMux sync.RWMutex
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan internal.StreamMessage
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func (wsc *DispatchEventsWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/dispatch-events", wsc.handleWebSocket())
}

func (wsc *DispatchEventsWebSocketController) ClientCount() int {
	wsc.clientsMux.RLock()
	defer wsc.clientsMux.RUnlock()
	return len(wsc.clients)
}

func (wsc *DispatchEventsWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.Any("error", err))
			return
		}

		select {
		case wsc.register <- conn:
		case <-wsc.ctx.Done():
			conn.Close()
			return
		}

		slog.Info("dispatch events client connected", slog.String("remote_addr", r.RemoteAddr))
		go wsc.keepAlive(conn)
		go wsc.readUntilClosed(conn)
	}
}

// readUntilClosed drains client frames so pongs and close frames are
// processed. Clients are not expected to send anything.
func (wsc *DispatchEventsWebSocketController) readUntilClosed(conn *websocket.Conn) {
	defer func() {
		select {
		case wsc.unregister <- conn:
		case <-wsc.ctx.Done():
		}
	}()

	conn.SetReadLimit(_wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(_wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (wsc *DispatchEventsWebSocketController) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(_wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case <-ticker.C:
			wsc.clientsMux.RLock()
			_, alive := wsc.clients[conn]
			wsc.clientsMux.RUnlock()
			if !alive {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(_wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}

func (wsc *DispatchEventsWebSocketController) run() {
	defer wsc.wg.Done()

	for {
		select {
		case <-wsc.ctx.Done():
			return

		case conn := <-wsc.register:
			wsc.clientsMux.Lock()
			wsc.clients[conn] = struct{}{}
			total := len(wsc.clients)
			wsc.clientsMux.Unlock()
			slog.Debug("websocket client registered", slog.Int("total_clients", total))

		case conn := <-wsc.unregister:
			wsc.drop(conn)

		case message := <-wsc.broadcast:
			wsc.write(message)

		case msg, ok := <-wsc.dispatches.Receiver:
			if !ok {
				return
			}
			if entry, ok := msg.Value.(domain.JournalEntry); ok {
				wsc.enqueue(internal.StreamMessage{
					Type:      "dispatch_outcome",
					Timestamp: entry.RecordedAt,
					Data:      internal.ToJournalEntryResponse(entry),
				})
			}

		case msg, ok := <-wsc.telemetry.Receiver:
			if !ok {
				return
			}
			if reading, ok := msg.Value.(domain.TelemetryReading); ok {
				wsc.enqueue(internal.StreamMessage{
					Type:      "telemetry",
					Timestamp: reading.ReceivedAt,
					Data:      reading,
				})
			}
		}
	}
}

func (wsc *DispatchEventsWebSocketController) enqueue(message internal.StreamMessage) {
	select {
	case wsc.broadcast <- message:
	default:
		slog.Warn("broadcast channel full, dropping message", slog.String("type", message.Type))
	}
}

func (wsc *DispatchEventsWebSocketController) write(message internal.StreamMessage) {
	wsc.clientsMux.RLock()
	clients := make([]*websocket.Conn, 0, len(wsc.clients))
	for conn := range wsc.clients {
		clients = append(clients, conn)
	}
	wsc.clientsMux.RUnlock()

	for _, conn := range clients {
		_ = conn.SetWriteDeadline(time.Now().Add(_wsWriteTimeout))
		if err := conn.WriteJSON(message); err != nil {
			slog.Warn("writing to websocket client", slog.Any("error", err))
			wsc.drop(conn)
		}
	}
}

func (wsc *DispatchEventsWebSocketController) drop(conn *websocket.Conn) {
	wsc.clientsMux.Lock()
	defer wsc.clientsMux.Unlock()
	if _, ok := wsc.clients[conn]; !ok {
		return
	}
	delete(wsc.clients, conn)
	conn.Close()
}

func (wsc *DispatchEventsWebSocketController) Shutdown() {
	slog.Info("shutting down dispatch events websocket controller")
	wsc.cancel()
	_ = wsc.broker.Unsubscribe(async.BrokerTopicName(domain.TopicDispatchEvents), wsc.dispatches)
	_ = wsc.broker.Unsubscribe(async.BrokerTopicName(domain.TopicTelemetryEvents), wsc.telemetry)
	wsc.wg.Wait()

	wsc.clientsMux.Lock()
	for conn := range wsc.clients {
		conn.Close()
	}
	clear(wsc.clients)
	wsc.clientsMux.Unlock()
}
