package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/fooddash/fooddash-go/hub"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsControl mirrors the subscribe/unsubscribe messages the client adapter
// sends after connecting.
type wsControl struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
	Scope   string `json:"scope"`
}

// RealtimeHandler upgrades the connection and serves subscription control
// messages until the client goes away.
func RealtimeHandler(c *gin.Context) {
	userID, role := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Warnf("ws upgrade failed: %v", err)
		return
	}
	hub.RegisterClient(conn)
	defer hub.UnregisterClient(conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			utils.ErrorLogger.Warnf("ws: dropping bad control message: %v", err)
			continue
		}

		if !scopeAllowed(msg, userID, role) {
			utils.ErrorLogger.Warnf("ws: user %d (%s) denied scope %s/%s", userID, role, msg.Channel, msg.Scope)
			continue
		}

		switch msg.Action {
		case "subscribe":
			hub.Subscribe(conn, msg.Channel, msg.Scope)
		case "unsubscribe":
			hub.Unsubscribe(conn, msg.Channel, msg.Scope)
		}
	}
}

// scopeAllowed stops a user from listening on somebody else's
// user-scoped channel. Restaurant and chat scopes are checked loosely;
// ownership was already enforced when the scope id was handed out.
func scopeAllowed(msg wsControl, userID uint, role models.Role) bool {
	if role == models.RoleAdmin {
		return true
	}
	switch msg.Channel {
	case models.ChannelPartner, models.ChannelOrder:
		return msg.Scope == strconv.FormatUint(uint64(userID), 10)
	case models.ChannelRestaurant:
		return role == models.RoleRestaurantOwner
	case models.ChannelChat:
		return true
	}
	return false
}
