package services

import (
	"testing"
	"time"

	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/dto"
	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplaintService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)
	citizen := createTestUser(t, db, "alice", models.RoleCitizen)
	id := authctx.Identity{UserID: citizen.ID, Role: models.RoleCitizen}

	t.Run("valid submission starts pending", func(t *testing.T) {
		complaint, err := svc.Create(id, CreateComplaintInput{
			Category:    "Pothole",
			Description: "Big hole on main street",
			Lat:         "23.02",
			Lng:         "72.57",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, complaint.Status)
		assert.Equal(t, citizen.ID, complaint.UserID)
		assert.Equal(t, "alice", complaint.User.Name)
		assert.InDelta(t, 23.02, complaint.Lat, 1e-9)
		assert.InDelta(t, 72.57, complaint.Lng, 1e-9)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := svc.Create(id, CreateComplaintInput{
			Category: "Pothole",
			Lat:      "23.02",
			Lng:      "72.57",
		})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("non-numeric coordinates rejected", func(t *testing.T) {
		_, err := svc.Create(id, CreateComplaintInput{
			Category:    "Pothole",
			Description: "desc",
			Lat:         "north",
			Lng:         "72.57",
		})
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})
}

func TestComplaintService_List_Scoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	bob := createTestUser(t, db, "bob", models.RoleCitizen)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	createTestComplaint(t, db, alice, "Pothole")
	createTestComplaint(t, db, alice, "Streetlight")
	createTestComplaint(t, db, bob, "Garbage")

	t.Run("citizen sees only own complaints", func(t *testing.T) {
		complaints, _, err := svc.List(
			authctx.Identity{UserID: alice.ID, Role: models.RoleCitizen},
			dto.ComplaintFilter{},
		)
		require.NoError(t, err)
		require.Len(t, complaints, 2)
		for _, c := range complaints {
			assert.Equal(t, alice.ID, c.UserID)
		}
	})

	t.Run("requested filter cannot widen the scope", func(t *testing.T) {
		// bob asks for a category that only alice has
		complaints, _, err := svc.List(
			authctx.Identity{UserID: bob.ID, Role: models.RoleCitizen},
			dto.ComplaintFilter{Category: "Pothole"},
		)
		require.NoError(t, err)
		assert.Empty(t, complaints)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		complaints, _, err := svc.List(
			authctx.Identity{UserID: admin.ID, Role: models.RoleAdmin},
			dto.ComplaintFilter{},
		)
		require.NoError(t, err)
		assert.Len(t, complaints, 3)
	})

	t.Run("admin can narrow by status and category", func(t *testing.T) {
		complaints, _, err := svc.List(
			authctx.Identity{UserID: admin.ID, Role: models.RoleAdmin},
			dto.ComplaintFilter{Status: models.StatusPending, Category: "Garbage"},
		)
		require.NoError(t, err)
		require.Len(t, complaints, 1)
		assert.Equal(t, bob.ID, complaints[0].UserID)
	})
}

func TestComplaintService_List_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)
	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	id := authctx.Identity{UserID: alice.ID, Role: models.RoleCitizen}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		complaint := &models.Complaint{
			ID:          uuid.New(),
			UserID:      alice.ID,
			Category:    "Pothole",
			Description: "desc",
			Lat:         1,
			Lng:         2,
			Status:      models.StatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(complaint).Error)
	}

	t.Run("first page", func(t *testing.T) {
		complaints, pagination, err := svc.List(id, dto.ComplaintFilter{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, complaints, 2)
		assert.Equal(t, 1, pagination.Current)
		assert.Equal(t, 3, pagination.Total)
		assert.True(t, pagination.HasNext)
		assert.False(t, pagination.HasPrev)
		// newest first
		assert.True(t, complaints[0].CreatedAt.After(complaints[1].CreatedAt))
	})

	t.Run("last page", func(t *testing.T) {
		complaints, pagination, err := svc.List(id, dto.ComplaintFilter{Page: 3, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, complaints, 1)
		assert.False(t, pagination.HasNext)
		assert.True(t, pagination.HasPrev)
	})

	t.Run("exact boundary has no next page", func(t *testing.T) {
		// 5 rows, limit 5: page*limit == total
		_, pagination, err := svc.List(id, dto.ComplaintFilter{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.False(t, pagination.HasNext)
	})

	t.Run("defaults applied", func(t *testing.T) {
		_, pagination, err := svc.List(id, dto.ComplaintFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, pagination.Current)
		assert.Equal(t, 1, pagination.Total)
	})
}

func TestComplaintService_GetByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	bob := createTestUser(t, db, "bob", models.RoleCitizen)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	complaint := createTestComplaint(t, db, alice, "Pothole")

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.GetByID(authctx.Identity{UserID: alice.ID, Role: models.RoleCitizen}, complaint.ID)
		require.NoError(t, err)
		assert.Equal(t, complaint.ID, got.ID)
	})

	t.Run("other citizen is denied", func(t *testing.T) {
		_, err := svc.GetByID(authctx.Identity{UserID: bob.ID, Role: models.RoleCitizen}, complaint.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.GetByID(authctx.Identity{UserID: admin.ID, Role: models.RoleAdmin}, complaint.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetByID(authctx.Identity{UserID: alice.ID, Role: models.RoleCitizen}, uuid.New())
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	adminID := authctx.Identity{UserID: admin.ID, Role: models.RoleAdmin}
	complaint := createTestComplaint(t, db, alice, "Pothole")

	t.Run("valid transition updates and notifies", func(t *testing.T) {
		updated, err := svc.UpdateStatus(adminID, complaint.ID, models.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)

		var notifications []models.Notification
		require.NoError(t, db.Where("complaint_id = ?", complaint.ID).Find(&notifications).Error)
		require.Len(t, notifications, 1)
		assert.Equal(t, alice.ID, notifications[0].UserID)
		assert.Equal(t, "Complaint In Progress", notifications[0].Title)
		assert.True(t, notifications[0].AdminAction)
	})

	t.Run("repeating a status still notifies", func(t *testing.T) {
		updated, err := svc.UpdateStatus(adminID, complaint.ID, models.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)

		var count int64
		db.Model(&models.Notification{}).Where("complaint_id = ?", complaint.ID).Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("resolved complaint can be reopened", func(t *testing.T) {
		_, err := svc.UpdateStatus(adminID, complaint.ID, models.StatusResolved)
		require.NoError(t, err)
		updated, err := svc.UpdateStatus(adminID, complaint.ID, models.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
	})

	t.Run("status outside the set is rejected and nothing changes", func(t *testing.T) {
		var before models.Complaint
		require.NoError(t, db.First(&before, "id = ?", complaint.ID).Error)
		var countBefore int64
		db.Model(&models.Notification{}).Count(&countBefore)

		_, err := svc.UpdateStatus(adminID, complaint.ID, "Closed")
		assert.ErrorIs(t, err, ErrInvalidStatus)

		var after models.Complaint
		require.NoError(t, db.First(&after, "id = ?", complaint.ID).Error)
		assert.Equal(t, before.Status, after.Status)

		var countAfter int64
		db.Model(&models.Notification{}).Count(&countAfter)
		assert.Equal(t, countBefore, countAfter)
	})

	t.Run("unknown complaint is not found", func(t *testing.T) {
		_, err := svc.UpdateStatus(adminID, uuid.New(), models.StatusResolved)
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}

func TestComplaintService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)

	alice := createTestUser(t, db, "alice", models.RoleCitizen)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	adminID := authctx.Identity{UserID: admin.ID, Role: models.RoleAdmin}
	complaint := createTestComplaint(t, db, alice, "Pothole")

	_, err := svc.UpdateStatus(adminID, complaint.ID, models.StatusResolved)
	require.NoError(t, err)

	t.Run("delete removes complaint and its notifications", func(t *testing.T) {
		require.NoError(t, svc.Delete(complaint.ID))

		_, err := svc.GetByID(adminID, complaint.ID)
		assert.ErrorIs(t, err, ErrComplaintNotFound)

		var count int64
		db.Model(&models.Notification{}).Where("complaint_id = ?", complaint.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("deleting a missing complaint is not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(uuid.New()), ErrComplaintNotFound)
	})
}

func TestComplaintService_Stats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, NewNotificationService(db), nil)
	alice := createTestUser(t, db, "alice", models.RoleCitizen)

	for i := 0; i < 3; i++ {
		createTestComplaint(t, db, alice, "Pothole")
	}
	inProgress := createTestComplaint(t, db, alice, "Garbage")
	require.NoError(t, db.Model(inProgress).Update("status", models.StatusInProgress).Error)
	resolved := createTestComplaint(t, db, alice, "Streetlight")
	require.NoError(t, db.Model(resolved).Update("status", models.StatusResolved).Error)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.Total)
	assert.EqualValues(t, 3, stats.Pending)
	assert.EqualValues(t, 1, stats.InProgress)
	assert.EqualValues(t, 1, stats.Resolved)
}
