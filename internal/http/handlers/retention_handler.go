package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pathlab-audit/backend/internal/http/dto"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

type RetentionHandler struct {
	retentionService *services.RetentionService
	log              *zap.Logger
}

func NewRetentionHandler(retentionService *services.RetentionService, log *zap.Logger) *RetentionHandler {
	return &RetentionHandler{retentionService: retentionService, log: log}
}

// Archive runs the archival sweep on demand for everything older than the
// requested number of days. The sweep is scoped to the caller's tenant; only
// the super admin may target another tenant via tenantId.
func (h *RetentionHandler) Archive(c *fiber.Ctx) error {
	var req dto.ArchiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.OlderThanDays <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "olderThanDays must be positive"})
	}

	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -req.OlderThanDays)
	archived, err := h.retentionService.ArchiveOlderThan(c.Context(), tenantID, cutoff)
	if err != nil {
		h.log.Error("archive sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.ArchiveResponse{OK: true, Archived: archived})
}
