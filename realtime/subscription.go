package realtime

import (
	"errors"
	"sync"

	"github.com/fooddash/fooddash-go/apiclient"
)

var (
	errClosed       = errors.New("adapter closed")
	errNotConnected = errors.New("not connected")
)

// Subscription is the handle returned by Subscribe. It is owned by the
// component that created it and must be torn down on unmount; handles are
// never stashed in globals.
type Subscription struct {
	adapter *Adapter
	key     subKey
	id      uint64
	once    sync.Once
}

// Channel returns the subscribed channel name.
func (s *Subscription) Channel() string { return s.key.channel }

// Scope returns the scoping identifier.
func (s *Subscription) Scope() string { return s.key.scope }

// Unsubscribe removes the handler and, when it was the last one on its
// channel and scope, tells the server to stop sending. Safe to call twice.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		a := s.adapter

		a.mu.Lock()
		delete(a.subs[s.key], s.id)
		last := len(a.subs[s.key]) == 0
		if last {
			delete(a.subs, s.key)
		}
		closed := a.closed
		a.mu.Unlock()

		if last && !closed {
			// Best effort; the server also drops scopes when the socket dies.
			a.writeControl(control{Action: "unsubscribe", Channel: s.key.channel, Scope: s.key.scope})
		}
	})
}

// Resubscribe re-announces the subscription to the server after a
// reconnect. The adapter deliberately does not do this by itself; the
// handle's owner calls it from the OnReconnect hook.
func (s *Subscription) Resubscribe() error {
	a := s.adapter

	a.mu.Lock()
	_, alive := a.subs[s.key][s.id]
	a.mu.Unlock()
	if !alive {
		return &apiclient.ChannelError{Channel: s.key.channel, Err: errClosed}
	}

	if err := a.writeControl(control{Action: "subscribe", Channel: s.key.channel, Scope: s.key.scope}); err != nil {
		return &apiclient.ChannelError{Channel: s.key.channel, Err: err}
	}
	return nil
}
