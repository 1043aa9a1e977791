package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manuel14gregorioo/Agencia/internal/model"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

// AdminHandler serves the triage panel. Every route behind it already
// passed AuthMiddleware and AdminOnly.
type AdminHandler struct {
	leads      *service.LeadService
	newsletter *service.NewsletterService
	analytics  *service.AnalyticsService
	stats      *service.StatsService
	auth       *service.AuthService
}

func NewAdminHandler(leads *service.LeadService, newsletter *service.NewsletterService,
	analytics *service.AnalyticsService, stats *service.StatsService, auth *service.AuthService) *AdminHandler {
	return &AdminHandler{
		leads:      leads,
		newsletter: newsletter,
		analytics:  analytics,
		stats:      stats,
		auth:       auth,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	resp, err := h.stats.Stats(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListLeads(c *gin.Context) {
	filter := model.LeadFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		OrderBy:  c.DefaultQuery("order_by", "created_at"),
		OrderDir: c.DefaultQuery("order_dir", "desc"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 20),
	}

	resp, err := h.leads.ListLeads(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetLead(c *gin.Context) {
	leadID, ok := paramID(c)
	if !ok {
		return
	}

	lead, err := h.leads.GetLead(c.Request.Context(), leadID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *AdminHandler) UpdateLead(c *gin.Context) {
	leadID, ok := paramID(c)
	if !ok {
		return
	}

	var update model.LeadUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	lead, err := h.leads.UpdateLead(c.Request.Context(), leadID, update)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": lead})
}

func (h *AdminHandler) DeleteLead(c *gin.Context) {
	leadID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.leads.DeleteLead(c.Request.Context(), leadID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "lead deleted"})
}

func (h *AdminHandler) BulkUpdateLeads(c *gin.Context) {
	var req model.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lead_ids required"})
		return
	}

	count, err := h.leads.BulkUpdateLeads(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BulkUpdateResponse{Success: true, UpdatedCount: count})
}

func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	resp, err := h.newsletter.ListSubscribers(c.Request.Context(), activeOnly,
		queryInt(c, "page", 1), queryInt(c, "per_page", 50))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ExportSubscribers(c *gin.Context) {
	resp, err := h.newsletter.ExportActiveEmails(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) EventStats(c *gin.Context) {
	resp, err := h.analytics.EventStats(c.Request.Context(), queryInt(c, "days", 7))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CleanupTokens purges expired refresh tokens. Driven by an external
// scheduler hitting this endpoint, deliberately not wired into any
// request path.
func (h *AdminHandler) CleanupTokens(c *gin.Context) {
	deleted, err := h.auth.CleanupExpiredTokens(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CleanupResponse{Success: true, Deleted: deleted})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
