package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to already require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	staffGroup := r.Group("/staff",
		authMW.RequireRole(model.RoleStaff), authMW.RequireVerified())
	{
		staffGroup.GET("/my-schedule", h.MySchedule)
	}
}

func (h *Handler) MySchedule(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	schedules, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, schedules)
}
