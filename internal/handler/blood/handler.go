package blood

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
	bloodGroup := r.Group("/blood")
	{
		bloodGroup.POST("/request", h.CreateRequest)
		bloodGroup.GET("/mine", h.MyRequests)

		donorOnly := bloodGroup.Group("",
			authMW.RequireRole(model.RoleDonor), authMW.RequireVerified())
		{
			donorOnly.GET("/requests", h.ListOpen)
			donorOnly.PATCH("/accept/:id", h.Accept)
		}
	}
}

func (h *Handler) CreateRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateBloodRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, request)
}

// ListOpen returns every unclaimed request. Donors decide themselves
// which ones they can serve.
func (h *Handler) ListOpen(c *gin.Context) {
	requests, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, requests)
}

func (h *Handler) Accept(c *gin.Context) {
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

	if err := h.service.Accept(c.Request.Context(), id, user); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Request accepted"))
}

func (h *Handler) MyRequests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	requests, err := h.service.MyRequests(c.Request.Context(), user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, requests)
}
