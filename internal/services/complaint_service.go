package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/dto"
	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/civicfix/civicfix-backend/internal/uploads"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrAccessDenied       = errors.New("access denied")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ComplaintService owns the complaint lifecycle: creation, role-scoped
// queries, the status transitions and deletion. Status changes hand off
// to the NotificationService as a best-effort side effect.
type ComplaintService struct {
	db            *gorm.DB
	notifications *NotificationService
	uploads       *uploads.Store
}

func NewComplaintService(db *gorm.DB, notifications *NotificationService, uploads *uploads.Store) *ComplaintService {
	return &ComplaintService{db: db, notifications: notifications, uploads: uploads}
}

// CreateComplaintInput carries raw form values; lat/lng arrive as
// strings and must parse as numbers.
type CreateComplaintInput struct {
	Category    string
	Description string
	Lat         string
	Lng         string
	Image       *string
}

func (s *ComplaintService) Create(id authctx.Identity, in CreateComplaintInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Description) == "" ||
		in.Lat == "" || in.Lng == "" {
		return nil, ErrMissingFields
	}

	lat, latErr := strconv.ParseFloat(in.Lat, 64)
	lng, lngErr := strconv.ParseFloat(in.Lng, 64)
	if latErr != nil || lngErr != nil {
		return nil, ErrInvalidCoordinates
	}

	complaint := models.Complaint{
		ID:          uuid.New(),
		UserID:      id.UserID,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
		Lat:         lat,
		Lng:         lng,
		Status:      models.StatusPending,
	}

	if err := s.db.Create(&complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	// Attach owner info for the response.
	if err := s.db.Preload("User").First(&complaint, "id = ?", complaint.ID).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List returns the page of complaints the caller may see, newest first.
// The requested status/category filters apply on top of the access
// scope; a non-admin can never widen the scope past their own rows.
func (s *ComplaintService) List(id authctx.Identity, filter dto.ComplaintFilter) ([]models.Complaint, dto.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := s.db.Model(&models.Complaint{}).Scopes(authctx.VisibleTo(id))
	if models.ValidStatus(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, err
	}

	var complaints []models.Complaint
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	pagination := dto.Pagination{
		Current: page,
		Total:   int((total + int64(limit) - 1) / int64(limit)),
		HasNext: int64(page)*int64(limit) < total,
		HasPrev: page > 1,
	}
	return complaints, pagination, nil
}

func (s *ComplaintService) GetByID(id authctx.Identity, complaintID uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.db.Preload("User").First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if !id.CanAccess(complaint.UserID) {
		return nil, ErrAccessDenied
	}
	return &complaint, nil
}

// UpdateStatus applies a status transition. Any of the three statuses is
// reachable from any other; only set membership is enforced. The caller
// must already be admin-gated. On success a notification is dispatched;
// dispatch failure is logged and never unwinds the committed update.
func (s *ComplaintService) UpdateStatus(id authctx.Identity, complaintID uuid.UUID, status string) (*models.Complaint, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var complaint models.Complaint
	if err := s.db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&complaint).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if _, err := s.notifications.Dispatch(complaintID, status, id.UserID); err != nil {
		slog.Warn("notification dispatch failed",
			"complaint_id", complaintID, "status", status, "error", err)
	}

	if err := s.db.Preload("User").First(&complaint, "id = ?", complaintID).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Delete removes a complaint together with its notifications, then
// cleans up the stored image best-effort.
func (s *ComplaintService) Delete(complaintID uuid.UUID) error {
	var complaint models.Complaint
	if err := s.db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", complaintID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&complaint).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}

	if complaint.Image != nil && s.uploads != nil {
		if err := s.uploads.Remove(*complaint.Image); err != nil {
			slog.Warn("failed to remove complaint image",
				"complaint_id", complaintID, "image", *complaint.Image, "error", err)
		}
	}
	return nil
}

// Stats returns complaint counts grouped by status.
func (s *ComplaintService) Stats() (*dto.StatsResponse, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := dto.StatsResponse{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.Count
		case models.StatusInProgress:
			stats.InProgress = row.Count
		case models.StatusResolved:
			stats.Resolved = row.Count
		}
	}
	return &stats, nil
}
