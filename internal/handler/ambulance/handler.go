package ambulance

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ambulanceGroup := r.Group("/ambulance")
	{
		ambulanceGroup.POST("/request", h.RequestAmbulance)
		ambulanceGroup.GET("/my-requests", h.MyRequests)
	}
}

func (h *Handler) RequestAmbulance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.RequestAmbulanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	call, err := h.service.RequestAmbulance(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, call)
}

func (h *Handler) MyRequests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	calls, err := h.service.MyRequests(c.Request.Context(), user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, calls)
}
