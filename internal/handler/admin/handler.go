package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/service/admin"
	"github.com/nirban/hms-api/internal/service/schedule"
)

type Handler struct {
	service     *admin.Service
	scheduleSvc *schedule.Service
}

func NewHandler(service *admin.Service, scheduleSvc *schedule.Service) *Handler {
	return &Handler{service: service, scheduleSvc: scheduleSvc}
}

// RegisterRoutes expects r to already require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	adminGroup := r.Group("/admin", authMW.RequireRole(model.RoleAdmin))
	{
		adminGroup.GET("/users/:role", h.ListUsersByRole)
		adminGroup.PATCH("/verify/:id", h.VerifyUser)
		adminGroup.DELETE("/user/:id", h.DeleteUser)

		adminGroup.GET("/staff-schedule", h.ListSchedules)
		adminGroup.POST("/staff-schedule", h.AssignShift)
		adminGroup.DELETE("/staff-schedule/:id", h.RemoveShift)
	}
}

func (h *Handler) ListUsersByRole(c *gin.Context) {
	role := model.Role(c.Param("role"))

	users, err := h.service.ListUsersByRole(c.Request.Context(), role)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, users)
}

func (h *Handler) VerifyUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	user, err := h.service.VerifyUser(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	if _, err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("User deleted"))
}

func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleSvc.ListAll(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, schedules)
}

func (h *Handler) AssignShift(c *gin.Context) {
	var req model.CreateStaffScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.scheduleSvc.Assign(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, entry)
}

func (h *Handler) RemoveShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	if err := h.scheduleSvc.Remove(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Schedule entry removed"))
}
