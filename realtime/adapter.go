package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// Handler receives every validated frame matching a subscription's channel
// and scope, in arrival order.
type Handler func(frame models.PushFrame)

// control is the client-to-server message managing subscriptions.
type control struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
	Scope   string `json:"scope"`
}

type subKey struct {
	channel string
	scope   string
}

// Adapter owns the single process-wide realtime connection. Multiple
// subscriptions share it; each is independently unsubscribable.
//
// On transport drop the adapter redials with a fixed delay, but it does NOT
// replay subscriptions: the server forgot them, and the owner of each handle
// decides whether to call Resubscribe from the OnReconnect hook.
type Adapter struct {
	url            string
	token          apiclient.TokenProvider
	reconnectDelay time.Duration
	onReconnect    func()

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    *websocket.Conn
	subs    map[subKey]map[uint64]Handler
	nextID  uint64
	closed  bool
}

type Option func(*Adapter)

// WithReconnectDelay overrides the fixed delay between redial attempts.
func WithReconnectDelay(d time.Duration) Option {
	return func(a *Adapter) { a.reconnectDelay = d }
}

// WithOnReconnect installs a hook fired after every successful redial.
func WithOnReconnect(fn func()) Option {
	return func(a *Adapter) { a.onReconnect = fn }
}

func New(url string, token apiclient.TokenProvider, opts ...Option) *Adapter {
	if token == nil {
		token = func() string { return "" }
	}
	a := &Adapter{
		url:            url,
		token:          token,
		reconnectDelay: 3 * time.Second,
		subs:           make(map[subKey]map[uint64]Handler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetOnReconnect replaces the reconnect hook. Useful when the owner is
// built after the adapter.
func (a *Adapter) SetOnReconnect(fn func()) {
	a.mu.Lock()
	a.onReconnect = fn
	a.mu.Unlock()
}

// Connect dials the realtime endpoint and starts the read loop. Calling it
// twice is a no-op.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	if a.conn != nil || a.closed {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	conn, err := a.dial(ctx)
	if err != nil {
		return &apiclient.ChannelError{Channel: "connect", Err: err}
	}

	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()

	go a.readLoop(ctx, conn)
	return nil
}

func (a *Adapter) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	url := a.url
	if token := a.token(); token != "" {
		url += "?token=" + token
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	return conn, err
}

// Subscribe registers a handler for one channel and scope and announces the
// subscription to the server. The returned handle tears both down.
func (a *Adapter) Subscribe(channel, scope string, fn Handler) (*Subscription, error) {
	key := subKey{channel: channel, scope: scope}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, &apiclient.ChannelError{Channel: channel, Err: errClosed}
	}
	a.nextID++
	id := a.nextID
	if a.subs[key] == nil {
		a.subs[key] = make(map[uint64]Handler)
	}
	a.subs[key][id] = fn
	first := len(a.subs[key]) == 1
	a.mu.Unlock()

	sub := &Subscription{adapter: a, key: key, id: id}
	if first {
		if err := a.writeControl(control{Action: "subscribe", Channel: channel, Scope: scope}); err != nil {
			sub.Unsubscribe()
			return nil, &apiclient.ChannelError{Channel: channel, Err: err}
		}
	}
	return sub, nil
}

func (a *Adapter) writeControl(msg control) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()
	if conn == nil {
		return errNotConnected
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (a *Adapter) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !a.reconnect(ctx, &conn) {
				return
			}
			continue
		}
		a.dispatch(raw)
	}
}

// reconnect redials with a fixed delay until it succeeds or the context is
// canceled. Returns false when the loop should stop.
func (a *Adapter) reconnect(ctx context.Context, conn **websocket.Conn) bool {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	a.conn = nil
	a.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(a.reconnectDelay):
		}

		next, err := a.dial(ctx)
		if err != nil {
			utils.ErrorLogger.Warnf("realtime redial failed: %v", err)
			continue
		}

		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			next.Close()
			return false
		}
		a.conn = next
		hook := a.onReconnect
		a.mu.Unlock()

		*conn = next
		utils.InfoLogger.Info("realtime connection re-established")
		if hook != nil {
			hook()
		}
		return true
	}
}

// dispatch decodes, validates and fans out one frame. Malformed frames are
// dropped and logged, never allowed to kill the loop.
func (a *Adapter) dispatch(raw []byte) {
	var frame models.PushFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		utils.ErrorLogger.Warnf("realtime: dropping undecodable frame: %v", err)
		return
	}
	if err := frame.Validate(); err != nil {
		utils.ErrorLogger.Warnf("realtime: dropping invalid frame: %v", err)
		return
	}

	key := subKey{channel: frame.Channel, scope: frame.Scope}
	a.mu.Lock()
	handlers := make([]Handler, 0, len(a.subs[key]))
	for _, fn := range a.subs[key] {
		handlers = append(handlers, fn)
	}
	a.mu.Unlock()

	for _, fn := range handlers {
		fn(frame)
	}
}

// Close tears down the connection. Registered handlers are discarded.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	conn := a.conn
	a.conn = nil
	a.subs = make(map[subKey]map[uint64]Handler)
	a.mu.Unlock()

	if conn == nil {
		return nil
	}
	a.writeMu.Lock()
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	a.writeMu.Unlock()
	return conn.Close()
}
