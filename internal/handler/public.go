package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manuel14gregorioo/Agencia/internal/model"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

// PublicHandler serves the unauthenticated landing-page endpoints.
type PublicHandler struct {
	leads      *service.LeadService
	newsletter *service.NewsletterService
	analytics  *service.AnalyticsService
}

func NewPublicHandler(leads *service.LeadService, newsletter *service.NewsletterService, analytics *service.AnalyticsService) *PublicHandler {
	return &PublicHandler{leads: leads, newsletter: newsletter, analytics: analytics}
}

// Contact accepts a contact-form submission and creates a lead.
func (h *PublicHandler) Contact(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and project are required"})
		return
	}

	lead, err := h.leads.CreateLead(c.Request.Context(), req,
		c.ClientIP(), c.Request.UserAgent(), c.Request.Referer())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.ContactResponse{
		Success: true,
		Message: "Message received. We'll get back to you within 24 hours.",
		LeadID:  lead.ID,
	})
}

func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	outcome, err := h.newsletter.Subscribe(c.Request.Context(), req.Email, req.Name, c.ClientIP())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	switch outcome {
	case service.SubscribeAlreadySubscribed:
		c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "already subscribed"})
	case service.SubscribeReactivated:
		c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "subscription reactivated"})
	default:
		c.JSON(http.StatusCreated, model.SuccessResponse{Success: true, Message: "subscribed"})
	}
}

func (h *PublicHandler) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "unsubscribed"})
}

func (h *PublicHandler) TrackEvent(c *gin.Context) {
	var req model.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event name required"})
		return
	}

	if err := h.analytics.Track(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent()); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.SuccessResponse{Success: true})
}

// PublicConfig returns the static frontend configuration.
func (h *PublicHandler) PublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, model.PublicConfigResponse{
		ContactEmail: "hola@agenciadev.es",
		Phone:        "+34 600 000 000",
		Social: map[string]string{
			"linkedin": "https://linkedin.com/company/agenciadev",
			"github":   "https://github.com/agenciadev",
		},
		Features: map[string]bool{
			"newsletter": true,
			"analytics":  true,
		},
	})
}

// CalculateROI powers the landing-page savings calculator.
func (h *PublicHandler) CalculateROI(c *gin.Context) {
	var req model.ROIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Absent fields get the calculator's defaults, not the clamp floor.
	if req.HoursPerWeek == 0 {
		req.HoursPerWeek = 10
	}
	if req.HourlyCost == 0 {
		req.HourlyCost = 25
	}
	if req.Investment == 0 {
		req.Investment = 3500
	}

	c.JSON(http.StatusOK, service.CalculateROI(req))
}
