package handlers

import (
	"errors"
	"strconv"

	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/dto"
	"github.com/civicfix/civicfix-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	notifications, err := h.notificationService.List(id.UserID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch notifications",
		})
	}

	return c.JSON(notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	count, err := h.notificationService.UnreadCount(id.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get unread count",
		})
	}

	return c.JSON(dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification ID",
		})
	}

	notification, err := h.notificationService.MarkRead(notificationID, id.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update notification",
		})
	}

	return c.JSON(notification)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.notificationService.MarkAllRead(id.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification ID",
		})
	}

	if err := h.notificationService.Delete(notificationID, id.UserID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete notification",
		})
	}

	return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
}
