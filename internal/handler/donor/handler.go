package donor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/service/blood"
)

type Handler struct {
	service *blood.Service
}

func NewHandler(service *blood.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to already require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	donorGroup := r.Group("/donor",
		authMW.RequireRole(model.RoleDonor), authMW.RequireVerified())
	{
		donorGroup.GET("/dashboard", h.Dashboard)
		donorGroup.PATCH("/availability", h.UpdateAvailability)
		donorGroup.PATCH("/complete/:id", h.Complete)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), user)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, dashboard)
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.ToggleAvailability(c.Request.Context(), user, *req.Available); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Availability updated"))
}

func (h *Handler) Complete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request ID"))
		return
	}

	if err := h.service.Complete(c.Request.Context(), id, user.ID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Donation marked as completed"))
}
