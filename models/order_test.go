package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("pending_approval")
	assert.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, status)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}

func TestOrderLifecycleTransitions(t *testing.T) {
	assert.True(t, StatusPendingApproval.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPendingApproval.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusPendingApproval.CanTransitionTo(StatusDelivered))

	assert.True(t, StatusApproved.CanTransitionTo(StatusAssigned))
	assert.True(t, StatusApproved.CanTransitionTo(StatusPickedUp))
	assert.False(t, StatusApproved.CanTransitionTo(StatusPendingApproval))

	assert.True(t, StatusAssigned.CanTransitionTo(StatusPickedUp))
	assert.False(t, StatusAssigned.CanTransitionTo(StatusDelivered))

	assert.True(t, StatusPickedUp.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusPickedUp.CanTransitionTo(StatusCanceled))
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCanceled} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range []OrderStatus{StatusPendingApproval, StatusApproved,
			StatusAssigned, StatusPickedUp, StatusDelivered, StatusCanceled} {
			assert.False(t, terminal.CanTransitionTo(next))
		}
	}
}

func TestPushFrameValidate(t *testing.T) {
	valid := PushFrame{
		Channel: ChannelOrder,
		Scope:   "1",
		Event:   EventOrderUpdate,
		Data:    []byte(`{"order_id":1,"status":"approved"}`),
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Channel = "NopeChannel"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Event = "order_teleported"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Data = nil
	assert.Error(t, bad.Validate())
}

func TestDecodeStatusUpdateRejectsBadPayloads(t *testing.T) {
	frame := PushFrame{Channel: ChannelOrder, Event: EventOrderUpdate}

	frame.Data = []byte(`{"status":"approved"}`)
	_, err := frame.DecodeStatusUpdate()
	assert.Error(t, err)

	frame.Data = []byte(`{"order_id":5,"status":"floating"}`)
	_, err = frame.DecodeStatusUpdate()
	assert.Error(t, err)

	frame.Data = []byte(`{"order_id":5,"status":"approved"}`)
	update, err := frame.DecodeStatusUpdate()
	assert.NoError(t, err)
	assert.Equal(t, uint(5), update.OrderID)
}

func TestParseRoleDefaultsToGuest(t *testing.T) {
	assert.Equal(t, RoleCustomer, ParseRole("customer"))
	assert.Equal(t, RolePartner, ParseRole("partner"))
	assert.Equal(t, RoleGuest, ParseRole("superuser"))
	assert.Equal(t, RoleGuest, ParseRole(""))
}
