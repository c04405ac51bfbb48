package handlers

import (
	"net/http"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/gin-gonic/gin"
)

// ListHandler serves the authenticated user's watch list.
type ListHandler struct {
	listService service.ListService
}

// NewListHandler creates a new ListHandler instance.
func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// AddSeries godoc
// @Summary Add a series to my list
// @Tags list
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.AddListEntryRequest true "Entry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /auth/list/add-series [post]
func (h *ListHandler) AddSeries(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req service.AddListEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	added, err := h.listService.Add(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondServiceError(c, err, "failed to add series to list")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "series added to list", "added": added})
}

// UpdateSeries godoc
// @Summary Update a list entry
// @Description Changing status away from VISTA clears the rating
// @Tags list
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param seriesId path int true "Series ID"
// @Param request body service.UpdateListEntryRequest true "Entry"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /auth/my-list/update-series/{seriesId} [put]
func (h *ListHandler) UpdateSeries(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	seriesID, ok := idParam(c, "seriesId")
	if !ok {
		return
	}

	var req service.UpdateListEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.listService.Update(c.Request.Context(), claims.UserID, seriesID, req)
	if err != nil {
		respondServiceError(c, err, "failed to update list entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "list entry updated", "updated": updated})
}

// MyList godoc
// @Summary Page through my list
// @Tags list
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(5)
// @Param status query string false "POR_VER, MIRANDO or VISTA"
// @Success 200 {object} service.ListPage
// @Failure 400 {object} map[string]interface{}
// @Router /auth/my-list [get]
func (h *ListHandler) MyList(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", service.DefaultListPageSize)
	if !ok {
		return
	}

	result, err := h.listService.Page(c.Request.Context(), claims.UserID, models.ListStatus(c.Query("status")), page, limit)
	if err != nil {
		respondServiceError(c, err, "failed to load list")
		return
	}

	c.JSON(http.StatusOK, result)
}

// AllSeries godoc
// @Summary Every entry of my list
// @Tags list
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ListEntryView
// @Router /auth/my-list/all [get]
func (h *ListHandler) AllSeries(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	entries, err := h.listService.All(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err, "failed to load list")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// RemoveSeries godoc
// @Summary Remove a series from my list
// @Tags list
// @Security BearerAuth
// @Produce json
// @Param seriesId path int true "Series ID"
// @Success 200 {object} map[string]string
// @Router /auth/my-list/{seriesId} [delete]
func (h *ListHandler) RemoveSeries(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	seriesID, ok := idParam(c, "seriesId")
	if !ok {
		return
	}

	if err := h.listService.Remove(c.Request.Context(), claims.UserID, seriesID); err != nil {
		respondServiceError(c, err, "failed to remove series from list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "series removed from list"})
}
