package reception

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/service/reception"
)

type Handler struct {
	service *reception.Service
}

func NewHandler(service *reception.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to already require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	receptionGroup := r.Group("/reception",
		authMW.RequireRole(model.RoleStaff), authMW.RequireVerified())
	{
		receptionGroup.GET("/beds", h.ListBeds)
		receptionGroup.GET("/patient-lookup", h.PatientLookup)
		receptionGroup.POST("/reservations", h.CreateReservation)
		receptionGroup.POST("/reservations/:id/checkout", h.Checkout)
	}
}

func (h *Handler) ListBeds(c *gin.Context) {
	bedType := model.BedType(c.Query("type"))

	beds, err := h.service.ListBedsWithStatus(c.Request.Context(), bedType)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, beds)
}

// PatientLookup resolves a patient by ID or email.
func (h *Handler) PatientLookup(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("query parameter q is required"))
		return
	}

	patient, err := h.service.LookupPatient(c.Request.Context(), query)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, patient)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req model.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, reservation)
}

func (h *Handler) Checkout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reservation ID"))
		return
	}

	reservation, err := h.service.Checkout(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondOK(c, reservation)
}
