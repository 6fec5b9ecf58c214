package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService creates status-change notifications and serves
// per-user retrieval, read marking and deletion.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Dispatch creates exactly one notification for the complaint's owner
// describing newStatus. It reloads the complaint so the message always
// reflects the current category and owner. Dispatch errors are the
// caller's concern only as far as logging; the status change that
// triggered them is already committed.
func (s *NotificationService) Dispatch(complaintID uuid.UUID, newStatus string, adminID uuid.UUID) (*models.Notification, error) {
	var complaint models.Complaint
	if err := s.db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	var kind, title, message string
	switch newStatus {
	case models.StatusResolved:
		kind = models.NotificationResolved
		title = "Complaint Resolved"
		message = fmt.Sprintf("Your %s complaint has been resolved successfully.", complaint.Category)
	case models.StatusInProgress:
		kind = models.NotificationInProgress
		title = "Complaint In Progress"
		message = fmt.Sprintf("Your %s complaint is now being worked on.", complaint.Category)
	case models.StatusPending:
		kind = models.NotificationPending
		title = "Complaint Status Updated"
		message = fmt.Sprintf("Your %s complaint status has been updated to pending.", complaint.Category)
	default:
		kind = models.NotificationStatusUpdate
		title = "Complaint Status Update"
		message = fmt.Sprintf("Your %s complaint status has been updated to %s.", complaint.Category, newStatus)
	}

	notification := models.Notification{
		ID:          uuid.New(),
		UserID:      complaint.UserID,
		ComplaintID: complaint.ID,
		Type:        kind,
		Title:       title,
		Message:     message,
		AdminAction: true,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	slog.Info("notification dispatched",
		"complaint_id", complaintID, "status", newStatus,
		"recipient", complaint.UserID, "admin_id", adminID)
	return &notification, nil
}

// List returns up to limit notifications for the user, newest first,
// with the source complaint attached. limit defaults to 50.
func (s *NotificationService) List(userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var notifications []models.Notification
	err := s.db.Scopes(authctx.ForRecipient(userID)).
		Preload("Complaint").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Scopes(authctx.ForRecipient(userID)).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the read flag on a single notification. The recipient
// scope makes a foreign notification indistinguishable from a missing
// one: both are NotFound.
func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) (*models.Notification, error) {
	result := s.db.Model(&models.Notification{}).
		Scopes(authctx.ForRecipient(userID)).
		Where("id = ?", notificationID).
		Update("read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotificationNotFound
	}

	var notification models.Notification
	if err := s.db.Preload("Complaint").First(&notification, "id = ?", notificationID).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllRead flips every unread notification for the user. A user with
// nothing unread is a successful no-op.
func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Scopes(authctx.ForRecipient(userID)).
		Where("read = ?", false).
		Update("read", true).Error
}

// Delete removes a single notification, same ownership rule as MarkRead.
func (s *NotificationService) Delete(notificationID, userID uuid.UUID) error {
	result := s.db.Scopes(authctx.ForRecipient(userID)).
		Where("id = ?", notificationID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
