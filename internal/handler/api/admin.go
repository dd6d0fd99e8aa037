package api

import (
	"errors"
	"net/http"

	reqdto "resource-booking/internal/handler/dto/request"
	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/handler/middleware"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves the management surface: resource registry writes and
// the cross-user booking listing. Routes are mounted behind RequireAdmin.
type AdminHandler struct {
	resourceCommands commands.ResourceCommands
	resourceQueries  queries.ResourceQueries
	bookingCommands  commands.BookingCommands
	bookingQueries   queries.BookingQueries
}

func NewAdminHandler(
	resourceCommands commands.ResourceCommands,
	resourceQueries queries.ResourceQueries,
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
) *AdminHandler {
	return &AdminHandler{
		resourceCommands: resourceCommands,
		resourceQueries:  resourceQueries,
		bookingCommands:  bookingCommands,
		bookingQueries:   bookingQueries,
	}
}

// @Summary Create resource
// @Description Register a new bookable resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/resources [post]
func (h *AdminHandler) CreateResource(c *gin.Context) {
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.resourceCommands.CreateResource(c.Request.Context(), commands.CreateResourceParams{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.IsActive(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidResourceName):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Resource name must not be empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Update resource
// @Description Update a resource's name, description, or active flag
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Resource"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/resources/{id} [put]
func (h *AdminHandler) UpdateResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var req reqdto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.resourceCommands.UpdateResource(c.Request.Context(), id, commands.UpdateResourceParams{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, commands.ErrInvalidResourceName):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Resource name must not be empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary List all resources
// @Description List every resource including inactive ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ResourceResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/resources [get]
func (h *AdminHandler) ListAllResources(c *gin.Context) {
	views, err := h.resourceQueries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ResourceResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromResourceView(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List all bookings
// @Description List bookings across all users with optional filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param resource_id query string false "Filter by resource"
// @Param from query string false "Start of window, RFC3339"
// @Param to query string false "End of window, RFC3339"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/bookings [get]
func (h *AdminHandler) ListAllBookings(c *gin.Context) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resourceID, from, to, err := q.ParseFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	items, err := h.bookingQueries.ListAll(c.Request.Context(), queries.BookingFilter{
		ResourceID: resourceID,
		From:       from,
		To:         to,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, rm := range items {
		response[i] = resdto.FromBookingListItem(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Cancel any booking
// @Description Cancel an active booking on behalf of any user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/bookings/{id} [delete]
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingCommands.CancelBooking(c.Request.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not active",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
