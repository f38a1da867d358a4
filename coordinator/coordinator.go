package coordinator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/realtime"
	"github.com/fooddash/fooddash-go/services"
	"github.com/fooddash/fooddash-go/utils"
)

// Config wires one role's order view.
type Config struct {
	Orders  *services.OrderService
	Adapter *realtime.Adapter
	Session models.Session
	// RestaurantID scopes the restaurant_owner channel; ignored for other
	// roles.
	RestaurantID uint
	PollInterval time.Duration
	// OnError receives retryable poll failures for the screen to surface.
	OnError func(error)
}

// Coordinator combines polling and push into one consistent order list for
// the current role. It owns its subscription handle and polling goroutine;
// Stop tears both down.
type Coordinator struct {
	feed    *Feed
	poller  *Poller
	adapter *realtime.Adapter
	channel string
	scope   string
	sub     *realtime.Subscription
	cancel  context.CancelFunc
}

// New builds a coordinator for the session's role. Guests have no order
// list and get an error.
func New(cfg Config) (*Coordinator, error) {
	feed := NewFeed()

	var fetch FetchFunc
	var channel, scope string
	switch cfg.Session.Role {
	case models.RoleCustomer:
		fetch = cfg.Orders.List
		channel = models.ChannelOrder
		scope = strconv.FormatUint(uint64(cfg.Session.UserID), 10)
	case models.RolePartner:
		fetch = cfg.Orders.PartnerPendingOrders
		channel = models.ChannelPartner
		scope = strconv.FormatUint(uint64(cfg.Session.UserID), 10)
	case models.RoleRestaurantOwner, models.RoleAdmin:
		fetch = cfg.Orders.NewRestaurantOrders
		channel = models.ChannelRestaurant
		scope = strconv.FormatUint(uint64(cfg.RestaurantID), 10)
	default:
		return nil, fmt.Errorf("role %s has no order feed", cfg.Session.Role)
	}

	return &Coordinator{
		feed:    feed,
		poller:  NewPoller(fetch, feed, cfg.PollInterval, cfg.OnError),
		adapter: cfg.Adapter,
		channel: channel,
		scope:   scope,
	}, nil
}

// Start subscribes to the role's channel and launches the polling loop.
// The subscription is re-announced after every reconnect; the server-side
// state died with the old socket.
func (c *Coordinator) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	sub, err := c.adapter.Subscribe(c.channel, c.scope, c.feed.ApplyPush)
	if err != nil {
		cancel()
		return err
	}
	c.sub = sub

	c.adapter.SetOnReconnect(func() {
		if err := sub.Resubscribe(); err != nil {
			utils.ErrorLogger.Warnf("resubscribe %s/%s failed: %v", c.channel, c.scope, err)
		}
	})

	go c.poller.Run(ctx)
	return nil
}

// Orders returns the current reconciled list.
func (c *Coordinator) Orders() []models.Order {
	return c.feed.Orders()
}

// Feed exposes the underlying feed, mainly for screens needing Get.
func (c *Coordinator) Feed() *Feed {
	return c.feed
}

// Stop cancels the polling loop and releases the subscription. Safe to
// call more than once.
func (c *Coordinator) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
}
