package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/cart"
	"github.com/fooddash/fooddash-go/coordinator"
	"github.com/fooddash/fooddash-go/devserver"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/realtime"
	"github.com/fooddash/fooddash-go/router"
	"github.com/fooddash/fooddash-go/services"
	"github.com/fooddash/fooddash-go/session"
	"github.com/fooddash/fooddash-go/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

var testDBSeq int

func setupTestServer(t *testing.T) *httptest.Server {
	testDBSeq++
	dsn := fmt.Sprintf("file:fooddash_itest_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := devserver.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := devserver.SeedDemoData(db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	server := httptest.NewServer(router.SetupRouter(db))
	t.Cleanup(server.Close)
	return server
}

func loginAs(t *testing.T, baseURL, email string) models.Session {
	auth := services.NewAuthService(apiclient.New(baseURL, nil))
	resp, err := auth.Login(context.Background(), services.LoginRequest{
		Email:    email,
		Password: "password",
	})
	if err != nil {
		t.Fatalf("login %s failed: %v", email, err)
	}
	return resp.Session()
}

func clientFor(baseURL string, sess models.Session) *apiclient.Client {
	return apiclient.New(baseURL, func() string { return sess.Token })
}

func wsBase(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

// TestOrderLifecycleEndToEnd walks the full happy path through the real
// route table: login, browse, fill the cart, checkout, approval, partner
// claim, delivery, payment and chat, with the customer watching it all
// through the poll+push coordinator.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	customerSess := loginAs(t, server.URL, "customer@fooddash.dev")
	ownerSess := loginAs(t, server.URL, "owner@fooddash.dev")
	partnerSess := loginAs(t, server.URL, "partner@fooddash.dev")
	assert.Equal(t, models.RoleCustomer, customerSess.Role)
	assert.Equal(t, models.RoleRestaurantOwner, ownerSess.Role)
	assert.Equal(t, models.RolePartner, partnerSess.Role)

	// The session survives a store round trip.
	storeDB, err := gorm.Open(sqlite.Open("file:fooddash_itest_session?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)
	store, err := session.NewWithDB(storeDB)
	assert.NoError(t, err)
	assert.NoError(t, store.SaveSession(customerSess))
	assert.True(t, store.Load().LoggedIn())

	customerAPI := clientFor(server.URL, customerSess)
	ownerAPI := clientFor(server.URL, ownerSess)
	partnerAPI := clientFor(server.URL, partnerSess)

	// Browse the catalog as the customer.
	restaurants, err := services.NewRestaurantService(customerAPI).List(ctx)
	assert.NoError(t, err)
	assert.Len(t, restaurants, 1)
	menu, err := services.NewRestaurantService(customerAPI).MenuItems(ctx, restaurants[0].ID)
	assert.NoError(t, err)
	assert.Len(t, menu, 3)

	var nasi, satay models.MenuItem
	for _, item := range menu {
		switch item.Name {
		case "Nasi Goreng":
			nasi = item
		case "Chicken Satay":
			satay = item
		}
	}

	// Fill the cart: 2x5 + 1x3 = 13.
	ct := cart.New()
	ct.AddItem(models.CartItem{
		MenuItemID:   nasi.ID,
		RestaurantID: nasi.RestaurantID,
		Name:         nasi.Name,
		UnitPrice:    nasi.Price,
		Quantity:     2,
	})
	ct.AddItem(models.CartItem{
		MenuItemID:   satay.ID,
		RestaurantID: satay.RestaurantID,
		Name:         satay.Name,
		UnitPrice:    satay.Price,
	})
	assert.Equal(t, 13.0, ct.Total())

	addresses, err := services.NewLocationService(customerAPI, func() models.Role { return customerSess.Role }).Addresses(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, addresses)
	addressID := addresses[0].ID

	// Checkout.
	orderSvc := services.NewOrderService(customerAPI, func() models.Role { return customerSess.Role })
	checkout, err := services.CreateOrderFromCart(ct.Items(), models.DeliveryTypeDelivery, &addressID)
	assert.NoError(t, err)
	order, err := orderSvc.Create(ctx, checkout)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusPendingApproval, order.Status)
	assert.Equal(t, 13.0, order.TotalPrice)
	assert.Len(t, order.Items, 2)
	ct.Clear()

	// Resubmitting the same checkout must not create a second order.
	replay, err := orderSvc.Create(ctx, checkout)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, replay.ID)

	// The customer watches the order through the coordinator.
	adapter := realtime.New(wsBase(server), func() string { return customerSess.Token })
	assert.NoError(t, adapter.Connect(ctx))
	defer adapter.Close()

	coord, err := coordinator.New(coordinator.Config{
		Orders:       orderSvc,
		Adapter:      adapter,
		Session:      customerSess,
		PollInterval: 25 * time.Millisecond,
	})
	assert.NoError(t, err)
	assert.NoError(t, coord.Start(ctx))
	defer coord.Stop()

	assert.Eventually(t, func() bool {
		got, ok := coord.Feed().Get(order.ID)
		return ok && got.Status == models.StatusPendingApproval
	}, 3*time.Second, 10*time.Millisecond)

	// The owner sees and approves the order.
	ownerOrders := services.NewOrderService(ownerAPI, func() models.Role { return ownerSess.Role })
	incoming, err := ownerOrders.NewRestaurantOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, incoming, 1)
	assert.Equal(t, order.ID, incoming[0].ID)

	approved, err := ownerOrders.UpdateStatus(ctx, order.ID, models.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	// The status change reaches the customer without waiting for a poll
	// cycle to notice; either path must converge on approved.
	assert.Eventually(t, func() bool {
		got, ok := coord.Feed().Get(order.ID)
		return ok && got.Status == models.StatusApproved
	}, 3*time.Second, 10*time.Millisecond)

	// Customers may no longer cancel once the restaurant approved.
	_, err = orderSvc.UpdateStatus(ctx, order.ID, models.StatusCanceled)
	he, ok := apiclient.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.StatusCode)

	// A partner claims the order.
	partnerOrders := services.NewOrderService(partnerAPI, func() models.Role { return partnerSess.Role })
	pending, err := partnerOrders.PartnerPendingOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	claimed, err := partnerOrders.UpdateStatus(ctx, order.ID, models.StatusAssigned)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, claimed.Status)
	if assert.NotNil(t, claimed.PartnerID) {
		assert.Equal(t, partnerSess.UserID, *claimed.PartnerID)
	}

	// An approval replay is now an illegal transition.
	_, err = ownerOrders.UpdateStatus(ctx, order.ID, models.StatusApproved)
	he, ok = apiclient.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.StatusCode)

	// Pickup and delivery.
	_, err = partnerOrders.UpdateStatus(ctx, order.ID, models.StatusPickedUp)
	assert.NoError(t, err)
	delivered, err := partnerOrders.UpdateStatus(ctx, order.ID, models.StatusDelivered)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)

	assert.Eventually(t, func() bool {
		got, ok := coord.Feed().Get(order.ID)
		return ok && got.Status == models.StatusDelivered
	}, 3*time.Second, 10*time.Millisecond)

	// Pay for the order through the stub gateway.
	payments := services.NewPaymentService(customerAPI, func() models.Role { return customerSess.Role })
	intent, err := payments.CreateIntent(ctx, services.CreateIntentRequest{OrderID: order.ID, Method: "gopay"})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, intent.Status)
	assert.Equal(t, 13.0, intent.Amount)
	assert.NotEmpty(t, intent.PaymentURL)

	settled, err := payments.Get(ctx, intent.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, settled.Status)

	// Claiming opened a chat between customer and partner; the partner
	// hears new messages over the ChatChannel.
	partnerAdapter := realtime.New(wsBase(server), func() string { return partnerSess.Token })
	assert.NoError(t, partnerAdapter.Connect(ctx))
	defer partnerAdapter.Close()

	chatFrames := make(chan models.PushFrame, 4)
	chatSub, err := partnerAdapter.Subscribe(models.ChannelChat, "1", func(f models.PushFrame) {
		chatFrames <- f
	})
	assert.NoError(t, err)
	defer chatSub.Unsubscribe()
	time.Sleep(50 * time.Millisecond) // let the subscribe control land

	chat := services.NewConversationService(customerAPI, func() models.Role { return customerSess.Role })
	sent, err := chat.Send(ctx, 1, "Please ring the bell")
	assert.NoError(t, err)
	assert.Equal(t, customerSess.UserID, sent.SenderID)

	select {
	case frame := <-chatFrames:
		msg, err := frame.DecodeChatMessage()
		assert.NoError(t, err)
		assert.Equal(t, "Please ring the bell", msg.Body)
	case <-time.After(3 * time.Second):
		t.Fatal("chat push never arrived")
	}

	history, err := services.NewConversationService(partnerAPI, func() models.Role { return partnerSess.Role }).Messages(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, history, 1)

	// Logout revokes the token and the store resets to guest.
	assert.NoError(t, services.NewAuthService(customerAPI).Logout(ctx))
	_, err = orderSvc.List(ctx)
	he, ok = apiclient.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.StatusCode)

	assert.NoError(t, store.Clear())
	assert.Equal(t, models.RoleGuest, store.Load().Role)
}

// TestGuestAndRegistrationFlow covers the public surface: guests can browse
// but not order, and a fresh signup lands as a customer regardless of the
// role asked for.
func TestGuestAndRegistrationFlow(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	guestAPI := apiclient.New(server.URL, nil)
	restaurants, err := services.NewRestaurantService(guestAPI).List(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, restaurants)

	guestOrders := services.NewOrderService(guestAPI, nil)
	orders, err := guestOrders.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)

	auth := services.NewAuthService(guestAPI)
	resp, err := auth.Register(ctx, services.RegisterRequest{
		Name:     "New User",
		Email:    "new.user@example.com",
		Password: "password",
		Role:     models.RoleAdmin, // must be ignored
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	sess := resp.Session()
	assert.True(t, sess.LoggedIn())
}
