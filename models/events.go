package models

import (
	"encoding/json"
	"fmt"
)

// Channel names exposed by the backend's push broker. Every subscription is
// a channel plus a scope identifier (user id, restaurant id, order id or
// conversation id).
const (
	ChannelPartner    = "PartnerChannel"
	ChannelRestaurant = "RestaurantChannel"
	ChannelOrder      = "OrderChannel"
	ChannelChat       = "ChatChannel"
)

// Push event discriminators. The payload in Data depends on the event:
// new_order and order carry a full Order record, order_update carries an
// OrderStatusUpdate, chat_message carries a ChatMessage.
const (
	EventNewOrder    = "new_order"
	EventOrderUpdate = "order_update"
	EventOrder       = "order"
	EventChatMessage = "chat_message"
)

// PushFrame is the envelope of every message on the realtime socket.
type PushFrame struct {
	Channel string          `json:"channel"`
	Scope   string          `json:"scope"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// OrderStatusUpdate is the partial payload of an order_update event. It
// patches a single field; a later poll refreshes the full record.
type OrderStatusUpdate struct {
	OrderID uint        `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

func knownChannel(name string) bool {
	switch name {
	case ChannelPartner, ChannelRestaurant, ChannelOrder, ChannelChat:
		return true
	}
	return false
}

func knownEvent(name string) bool {
	switch name {
	case EventNewOrder, EventOrderUpdate, EventOrder, EventChatMessage:
		return true
	}
	return false
}

// Validate rejects frames with an unknown channel or event, or without a
// payload. Invalid frames are dropped by the receiver, never dispatched.
func (f PushFrame) Validate() error {
	if !knownChannel(f.Channel) {
		return fmt.Errorf("unknown channel %q", f.Channel)
	}
	if !knownEvent(f.Event) {
		return fmt.Errorf("unknown event %q", f.Event)
	}
	if len(f.Data) == 0 {
		return fmt.Errorf("event %s without payload", f.Event)
	}
	return nil
}

// DecodeOrder decodes the full order payload of a new_order or order event.
func (f PushFrame) DecodeOrder() (Order, error) {
	var o Order
	if err := json.Unmarshal(f.Data, &o); err != nil {
		return Order{}, fmt.Errorf("decode order payload: %w", err)
	}
	if o.ID == 0 {
		return Order{}, fmt.Errorf("order payload without id")
	}
	return o, nil
}

// DecodeStatusUpdate decodes the payload of an order_update event.
func (f PushFrame) DecodeStatusUpdate() (OrderStatusUpdate, error) {
	var u OrderStatusUpdate
	if err := json.Unmarshal(f.Data, &u); err != nil {
		return OrderStatusUpdate{}, fmt.Errorf("decode status update: %w", err)
	}
	if u.OrderID == 0 {
		return OrderStatusUpdate{}, fmt.Errorf("status update without order id")
	}
	if _, err := ParseOrderStatus(string(u.Status)); err != nil {
		return OrderStatusUpdate{}, err
	}
	return u, nil
}

// DecodeChatMessage decodes the payload of a chat_message event.
func (f PushFrame) DecodeChatMessage() (ChatMessage, error) {
	var m ChatMessage
	if err := json.Unmarshal(f.Data, &m); err != nil {
		return ChatMessage{}, fmt.Errorf("decode chat message: %w", err)
	}
	if m.ConversationID == 0 {
		return ChatMessage{}, fmt.Errorf("chat message without conversation id")
	}
	return m, nil
}
