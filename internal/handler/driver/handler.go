package driver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/service/ambulance"
)

type Handler struct {
	service *ambulance.Service
}

func NewHandler(service *ambulance.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to already require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	driverGroup := r.Group("/driver",
		authMW.RequireRole(model.RoleAmbulanceDriver), authMW.RequireVerified())
	{
		driverGroup.GET("/dashboard", h.Dashboard)
		driverGroup.PATCH("/accept/:id", h.Accept)
		driverGroup.PATCH("/complete/:id", h.Complete)
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

func (h *Handler) Accept(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid call ID"))
		return
	}

	if err := h.service.Accept(c.Request.Context(), id, user.ID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Call accepted"))
}

func (h *Handler) Complete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid call ID"))
		return
	}

	if err := h.service.Complete(c.Request.Context(), id, user.ID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Trip marked as completed"))
}
