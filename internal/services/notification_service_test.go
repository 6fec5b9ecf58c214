package services

import (
	"testing"
	"time"

	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Dispatch_TextMapping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	complaint := createTestComplaint(t, db, alice, "Pothole")

	tests := []struct {
		status  string
		kind    string
		title   string
		message string
	}{
		{
			status:  models.StatusResolved,
			kind:    models.NotificationResolved,
			title:   "Complaint Resolved",
			message: "Your Pothole complaint has been resolved successfully.",
		},
		{
			status:  models.StatusInProgress,
			kind:    models.NotificationInProgress,
			title:   "Complaint In Progress",
			message: "Your Pothole complaint is now being worked on.",
		},
		{
			status:  models.StatusPending,
			kind:    models.NotificationPending,
			title:   "Complaint Status Updated",
			message: "Your Pothole complaint status has been updated to pending.",
		},
		{
			// Dispatch itself does not enforce set membership; unknown
			// values fall back to the generic wording.
			status:  "Escalated",
			kind:    models.NotificationStatusUpdate,
			title:   "Complaint Status Update",
			message: "Your Pothole complaint status has been updated to Escalated.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			notification, err := svc.Dispatch(complaint.ID, tt.status, admin.ID)
			require.NoError(t, err)
			assert.Equal(t, alice.ID, notification.UserID)
			assert.Equal(t, complaint.ID, notification.ComplaintID)
			assert.Equal(t, tt.kind, notification.Type)
			assert.Equal(t, tt.title, notification.Title)
			assert.Equal(t, tt.message, notification.Message)
			assert.True(t, notification.AdminAction)
			assert.False(t, notification.Read)
		})
	}
}

func TestNotificationService_Dispatch_ComplaintGone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	_, err := svc.Dispatch(uuid.New(), models.StatusResolved, admin.ID)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}

func TestNotificationService_List(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	bob := createTestUser(t, db, "bob", models.RoleCitizen)
	complaint := createTestComplaint(t, db, alice, "Pothole")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		notification := &models.Notification{
			ID:          uuid.New(),
			UserID:      alice.ID,
			ComplaintID: complaint.ID,
			Type:        models.NotificationPending,
			Title:       "t",
			Message:     "m",
			AdminAction: true,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(notification).Error)
	}

	t.Run("own notifications only, newest first, complaint attached", func(t *testing.T) {
		notifications, err := svc.List(alice.ID, 0)
		require.NoError(t, err)
		require.Len(t, notifications, 3)
		assert.True(t, notifications[0].CreatedAt.After(notifications[1].CreatedAt))
		assert.Equal(t, "Pothole", notifications[0].Complaint.Category)
		assert.Equal(t, "Test description", notifications[0].Complaint.Description)
	})

	t.Run("limit respected", func(t *testing.T) {
		notifications, err := svc.List(alice.ID, 2)
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		notifications, err := svc.List(bob.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
}

func TestNotificationService_ReadTracking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	bob := createTestUser(t, db, "bob", models.RoleCitizen)
	complaint := createTestComplaint(t, db, alice, "Pothole")

	makeNotification := func() *models.Notification {
		n := &models.Notification{
			ID:          uuid.New(),
			UserID:      alice.ID,
			ComplaintID: complaint.ID,
			Type:        models.NotificationPending,
			Title:       "t",
			Message:     "m",
		}
		require.NoError(t, db.Create(n).Error)
		return n
	}

	first := makeNotification()
	second := makeNotification()

	t.Run("unread count", func(t *testing.T) {
		count, err := svc.UnreadCount(alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("mark read by owner", func(t *testing.T) {
		notification, err := svc.MarkRead(first.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, notification.Read)

		count, err := svc.UnreadCount(alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("foreign notification looks missing", func(t *testing.T) {
		_, err := svc.MarkRead(second.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("mark all read", func(t *testing.T) {
		require.NoError(t, svc.MarkAllRead(alice.ID))
		count, err := svc.UnreadCount(alice.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		// no-op when nothing is unread
		require.NoError(t, svc.MarkAllRead(alice.ID))
	})

	t.Run("delete scoped to owner", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(second.ID, bob.ID), ErrNotificationNotFound)
		require.NoError(t, svc.Delete(second.ID, alice.ID))
		assert.ErrorIs(t, svc.Delete(second.ID, alice.ID), ErrNotificationNotFound)
	})
}
