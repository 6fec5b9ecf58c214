package handlers

import (
	"errors"
	"strconv"

	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/dto"
	"github.com/civicfix/civicfix-backend/internal/services"
	"github.com/civicfix/civicfix-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	complaintService *services.ComplaintService
	uploadStore      *uploads.Store
}

func NewComplaintHandler(complaintService *services.ComplaintService, uploadStore *uploads.Store) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService, uploadStore: uploadStore}
}

// Create handles the multipart complaint submission. The image part is
// optional; everything else arrives as form values.
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	input := services.CreateComplaintInput{
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Lat:         c.FormValue("lat"),
		Lng:         c.FormValue("lng"),
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		name, err := h.uploadStore.Save(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		input.Image = &name
	}

	complaint, err := h.complaintService.Create(id, input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	complaints, pagination, err := h.complaintService.List(id, dto.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch complaints",
		})
	}

	return c.JSON(dto.ComplaintListResponse{
		Complaints: complaints,
		Pagination: pagination,
	})
}

func (h *ComplaintHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.complaintService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

func (h *ComplaintHandler) GetByID(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	complaintID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid complaint ID",
		})
	}

	complaint, err := h.complaintService.GetByID(id, complaintID)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Complaint not found.",
			})
		}
		if errors.Is(err, services.ErrAccessDenied) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(complaint)
}

func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := authctx.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	complaintID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid complaint ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	complaint, err := h.complaintService.UpdateStatus(id, complaintID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid status.",
			})
		}
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Complaint not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(complaint)
}

func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid complaint ID",
		})
	}

	if err := h.complaintService.Delete(complaintID); err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Complaint not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete complaint",
		})
	}

	return c.JSON(fiber.Map{"message": "Complaint deleted successfully."})
}
