package coordinator

import (
	"context"
	"time"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// FetchFunc is one poll against the backend, returning the caller's full
// order list.
type FetchFunc func(ctx context.Context) ([]models.Order, error)

// Poller repeatedly fetches orders into a Feed. The loop is bound to the
// context passed to Run: navigating away cancels it, there is no global
// interval handle anywhere.
type Poller struct {
	fetch    FetchFunc
	feed     *Feed
	interval time.Duration
	onError  func(error)
}

func NewPoller(fetch FetchFunc, feed *Feed, interval time.Duration, onError func(error)) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{fetch: fetch, feed: feed, interval: interval, onError: onError}
}

// Run polls once immediately, then on every tick until ctx is canceled. A
// failed poll leaves the feed untouched and is reported through onError;
// the loop keeps going.
func (p *Poller) Run(ctx context.Context) {
	p.pollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	orders, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		utils.ErrorLogger.Warnf("order poll failed: %v", err)
		if p.onError != nil {
			p.onError(err)
		}
		return
	}
	p.feed.ApplyPoll(orders)
}
