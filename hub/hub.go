package hub

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

type subscription struct {
	Channel string
	Scope   string
}

// Hub keeps every connected realtime client and the channel+scope pairs it
// asked for, and fans push frames out to the matching connections.
type Hub struct {
	clients map[*websocket.Conn]map[subscription]bool
	mutex   sync.Mutex
}

var defaultHub = Hub{
	clients: make(map[*websocket.Conn]map[subscription]bool),
}

// RegisterClient adds a connection with no subscriptions yet.
func RegisterClient(conn *websocket.Conn) {
	defaultHub.mutex.Lock()
	defer defaultHub.mutex.Unlock()
	defaultHub.clients[conn] = make(map[subscription]bool)
}

// UnregisterClient drops a connection and all its subscriptions.
func UnregisterClient(conn *websocket.Conn) {
	defaultHub.mutex.Lock()
	defer defaultHub.mutex.Unlock()
	delete(defaultHub.clients, conn)
	conn.Close()
}

// Subscribe adds one channel+scope pair for a connection.
func Subscribe(conn *websocket.Conn, channel, scope string) {
	defaultHub.mutex.Lock()
	defer defaultHub.mutex.Unlock()
	if subs, ok := defaultHub.clients[conn]; ok {
		subs[subscription{Channel: channel, Scope: scope}] = true
	}
}

// Unsubscribe removes one channel+scope pair for a connection.
func Unsubscribe(conn *websocket.Conn, channel, scope string) {
	defaultHub.mutex.Lock()
	defer defaultHub.mutex.Unlock()
	if subs, ok := defaultHub.clients[conn]; ok {
		delete(subs, subscription{Channel: channel, Scope: scope})
	}
}

// BroadcastNewOrder announces a freshly created order to the restaurant.
func BroadcastNewOrder(order models.Order) {
	broadcast(models.ChannelRestaurant, uitoa(order.RestaurantID), models.EventNewOrder, order)
}

// BroadcastOrderToCustomer pushes a full order record to its customer.
func BroadcastOrderToCustomer(order models.Order) {
	broadcast(models.ChannelOrder, uitoa(order.CustomerID), models.EventOrder, order)
}

// BroadcastOrderToPartner pushes a full order record to its assigned partner.
func BroadcastOrderToPartner(order models.Order) {
	if order.PartnerID == nil {
		return
	}
	broadcast(models.ChannelPartner, uitoa(*order.PartnerID), models.EventNewOrder, order)
}

// BroadcastStatusUpdate pushes a bare status change to everyone tracking
// the order.
func BroadcastStatusUpdate(order models.Order) {
	update := models.OrderStatusUpdate{OrderID: order.ID, Status: order.Status}
	broadcast(models.ChannelOrder, uitoa(order.CustomerID), models.EventOrderUpdate, update)
	broadcast(models.ChannelRestaurant, uitoa(order.RestaurantID), models.EventOrderUpdate, update)
	if order.PartnerID != nil {
		broadcast(models.ChannelPartner, uitoa(*order.PartnerID), models.EventOrderUpdate, update)
	}
}

// BroadcastChatMessage delivers a message to both sides of a conversation.
func BroadcastChatMessage(msg models.ChatMessage) {
	broadcast(models.ChannelChat, uitoa(msg.ConversationID), models.EventChatMessage, msg)
}

func uitoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func broadcast(channel, scope, event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		utils.ErrorLogger.Errorf("hub: marshal %s payload: %v", event, err)
		return
	}
	frame, err := json.Marshal(models.PushFrame{
		Channel: channel,
		Scope:   scope,
		Event:   event,
		Data:    payload,
	})
	if err != nil {
		utils.ErrorLogger.Errorf("hub: marshal frame: %v", err)
		return
	}

	key := subscription{Channel: channel, Scope: scope}

	defaultHub.mutex.Lock()
	defer defaultHub.mutex.Unlock()
	for conn, subs := range defaultHub.clients {
		if !subs[key] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			utils.ErrorLogger.Warnf("hub: write to client failed: %v", err)
		}
	}
}
