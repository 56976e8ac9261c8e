// api/model/notification_test.go
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadIsMonotonic(t *testing.T) {
	n := &Notification{}
	require.False(t, n.IsRead())

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, n.MarkRead(first))
	require.True(t, n.IsRead())

	// A second mark must not move the read timestamp.
	later := first.Add(time.Hour)
	assert.False(t, n.MarkRead(later))
	assert.Equal(t, first, *n.ReadAt)
}

func TestMarkUnreadResetsState(t *testing.T) {
	n := &Notification{}
	assert.False(t, n.MarkUnread())

	n.MarkRead(time.Now())
	assert.True(t, n.MarkUnread())
	assert.False(t, n.IsRead())

	// Read-again after an explicit unread takes a fresh timestamp.
	again := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	assert.True(t, n.MarkRead(again))
	assert.Equal(t, again, *n.ReadAt)
}

func TestNotificationTypeValidation(t *testing.T) {
	for _, valid := range []NotificationType{NotificationTask, NotificationOrder, NotificationAlert, NotificationSystem, NotificationUrgent} {
		assert.True(t, valid.Valid(), string(valid))
	}
	assert.False(t, NotificationType("email").Valid())
}
