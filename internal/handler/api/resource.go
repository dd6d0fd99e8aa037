package api

import (
	"errors"
	"net/http"

	reqdto "resource-booking/internal/handler/dto/request"
	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceQueries queries.ResourceQueries
	bookingQueries  queries.BookingQueries
}

func NewResourceHandler(resourceQueries queries.ResourceQueries, bookingQueries queries.BookingQueries) *ResourceHandler {
	return &ResourceHandler{
		resourceQueries: resourceQueries,
		bookingQueries:  bookingQueries,
	}
}

// @Summary List resources
// @Description List active bookable resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ResourceResponse
// @Failure 401 {object} map[string]string
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	views, err := h.resourceQueries.ListActive(c.Request.Context())
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

// @Summary Get resource
// @Description Get resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.resourceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
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

// @Summary Resource availability
// @Description Occupied slots for a resource on a given UTC day
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Day in YYYY-MM-DD"
// @Success 200 {array} resdto.AvailabilitySlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Date parameter required",
		})
		return
	}

	date, err := q.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.bookingQueries.Availability(c.Request.Context(), id, date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.AvailabilitySlotResponse, len(slots))
	for i, rm := range slots {
		response[i] = resdto.FromAvailabilitySlot(rm)
	}

	c.JSON(http.StatusOK, response)
}
