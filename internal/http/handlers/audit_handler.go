package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/http/dto"
	"github.com/pathlab-audit/backend/internal/middleware"
	"github.com/pathlab-audit/backend/internal/models"
	"github.com/pathlab-audit/backend/internal/rbac"
	"github.com/pathlab-audit/backend/internal/repositories"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditService *services.AuditService
	log          *zap.Logger
}

func NewAuditHandler(auditService *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, log: log}
}

// resolveTenant returns the tenant scope for the request. Only the super admin
// may widen scope to another tenant via the tenantId query parameter.
func resolveTenant(c *fiber.Ctx) (uuid.UUID, error) {
	tenantID := middleware.GetTenantID(c)
	if q := c.Query("tenantId"); q != "" && rbac.CanCrossTenants(middleware.GetRole(c)) {
		other, err := uuid.Parse(q)
		if err != nil {
			return uuid.Nil, errors.New("invalid tenantId")
		}
		return other, nil
	}
	return tenantID, nil
}

func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAuditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	event := &models.AuditEvent{
		TenantID:       middleware.GetTenantID(c),
		Action:         req.Action,
		Category:       req.Category,
		Severity:       req.Severity,
		RiskLevel:      req.RiskLevel,
		Target:         req.Target,
		Description:    req.Description,
		Details:        req.Details,
		Compliance:     req.Compliance,
		Risk:           models.RiskInfo{Level: req.RiskLevel, Factors: req.RiskFactors, Mitigation: req.RiskMitigation},
		Outcome:        req.Outcome,
		IsSystemAction: req.IsSystemAction,
		IsAutomated:    req.IsAutomated,
		Tags:           req.Tags,
	}
	if req.Timestamp != nil {
		event.Timestamp = req.Timestamp.UTC()
	}
	if req.RetentionPeriodDays > 0 {
		event.Retention.PeriodDays = req.RetentionPeriodDays
	}

	if !req.IsSystemAction {
		event.Actor = &models.ActorInfo{
			ID:        middleware.GetUserID(c),
			Name:      middleware.GetUserName(c),
			Email:     middleware.GetUserEmail(c),
			Role:      middleware.GetRole(c),
			IPAddress: c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
	}

	if err := h.auditService.Record(c.Context(), event); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: verr.Message, Field: verr.Field, Reason: verr.Reason,
			})
		}
		if errors.Is(err, models.ErrSequenceExhausted) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: "daily log id sequence exhausted"})
		}
		h.log.Error("record audit event failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: event})
}

// parseFilter builds the repository filter from list/export query parameters.
// Malformed date values are an error; everything else unknown simply matches
// nothing.
func parseFilter(c *fiber.Ctx, tenantID uuid.UUID) (repositories.AuditFilter, error) {
	f := repositories.AuditFilter{
		TenantID:  tenantID,
		SortBy:    c.Query("sortBy", "timestamp"),
		SortOrder: c.Query("sortOrder", "desc"),
		Page:      1,
		Limit:     20,
	}

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	strFilter := func(name string) *string {
		if v := c.Query(name); v != "" {
			return &v
		}
		return nil
	}
	f.Action = strFilter("action")
	f.Category = strFilter("category")
	f.RiskLevel = strFilter("riskLevel")
	f.Severity = strFilter("severity")
	f.ComplianceStandard = strFilter("complianceStandard")
	f.Search = strFilter("search")
	f.IPAddress = strFilter("ipAddress")
	f.Outcome = strFilter("outcome")
	f.Tag = strFilter("tag")

	if v := c.Query("actorId"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ActorID = &id
		}
	}
	if v := c.Query("archived"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Archived = &b
		}
	}
	from, err := parseDateParam(c, "dateFrom")
	if err != nil {
		return f, err
	}
	f.DateFrom = from

	to, err := parseDateParam(c, "dateTo")
	if err != nil {
		return f, err
	}
	f.DateTo = to

	return f, nil
}

// parseDateParam accepts RFC3339 or plain dates; absent is fine, malformed is not.
func parseDateParam(c *fiber.Ctx, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}
	return nil, fmt.Errorf("invalid %s", name)
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	filter, err := parseFilter(c, tenantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	logs, pagination, err := h.auditService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list audit events failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	if logs == nil {
		logs = []models.AuditEvent{}
	}
	return c.JSON(dto.ListResponse{OK: true, Logs: logs, Pagination: pagination})
}

func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid audit event id"})
	}

	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	event, err := h.auditService.GetByID(c.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "audit event not found"})
		}
		h.log.Error("get audit event failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: event})
}
