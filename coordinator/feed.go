package coordinator

import (
	"sync"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// Feed is the single in-memory order list a role's screens render from.
// It reconciles two sources: periodic polls returning full order records,
// and push events which may carry either a full record or a bare status
// change.
//
// Reconciliation rules:
//   - the list never holds two entries with the same order id;
//   - a poll overwrites matching entries in place and appends unseen ones,
//     full records from polling are authoritative;
//   - a pushed new order is prepended only when its id is unseen;
//   - a pushed status change patches the status field only, and is ignored
//     for unknown ids (the next poll picks the order up).
type Feed struct {
	mu     sync.Mutex
	orders []models.Order
	index  map[uint]int
}

func NewFeed() *Feed {
	return &Feed{index: make(map[uint]int)}
}

// ApplyPoll merges one poll result. Applying the same result twice leaves
// the list unchanged.
func (f *Feed) ApplyPoll(orders []models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range orders {
		if o.ID == 0 {
			utils.ErrorLogger.Warn("feed: dropping polled order without id")
			continue
		}
		if pos, ok := f.index[o.ID]; ok {
			f.orders[pos] = o
			continue
		}
		f.index[o.ID] = len(f.orders)
		f.orders = append(f.orders, o)
	}
}

// ApplyPush folds one realtime event into the list. Events carrying
// anything other than order data are ignored; malformed payloads are
// dropped and logged.
func (f *Feed) ApplyPush(frame models.PushFrame) {
	switch frame.Event {
	case models.EventNewOrder, models.EventOrder:
		order, err := frame.DecodeOrder()
		if err != nil {
			utils.ErrorLogger.Warnf("feed: dropping %s push: %v", frame.Event, err)
			return
		}
		f.addFromPush(order)

	case models.EventOrderUpdate:
		update, err := frame.DecodeStatusUpdate()
		if err != nil {
			utils.ErrorLogger.Warnf("feed: dropping status push: %v", err)
			return
		}
		f.patchStatus(update)
	}
}

// addFromPush prepends an order the backend just announced. When the id is
// already present the push is ignored: the record on hand came from a poll
// or an earlier push, and the next poll refreshes it anyway.
func (f *Feed) addFromPush(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.index[order.ID]; ok {
		return
	}
	f.orders = append([]models.Order{order}, f.orders...)
	f.index = make(map[uint]int, len(f.orders))
	for i, o := range f.orders {
		f.index[o.ID] = i
	}
}

// patchStatus sets the status of a known order. Unknown ids are ignored.
func (f *Feed) patchStatus(update models.OrderStatusUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pos, ok := f.index[update.OrderID]
	if !ok {
		return
	}
	f.orders[pos].Status = update.Status
}

// Orders returns a snapshot of the list in its current render order.
func (f *Feed) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// Get returns one order by id.
func (f *Feed) Get(orderID uint) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos, ok := f.index[orderID]
	if !ok {
		return models.Order{}, false
	}
	return f.orders[pos], true
}

// Len returns the number of orders in the list.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}
