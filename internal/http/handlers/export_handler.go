package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pathlab-audit/backend/internal/http/dto"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

type ExportHandler struct {
	exportService *services.ExportService
	log           *zap.Logger
}

func NewExportHandler(exportService *services.ExportService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{exportService: exportService, log: log}
}

func (h *ExportHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", services.ExportJSON)
	if format != services.ExportJSON && format != services.ExportCSV {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "format must be json or csv"})
	}

	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	filter, err := parseFilter(c, tenantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	data, contentType, err := h.exportService.Export(c.Context(), filter, format)
	if err != nil {
		h.log.Error("export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	filename := fmt.Sprintf("audit-export-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
