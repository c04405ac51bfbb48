package handlers

import (
	"net/http"
	"strconv"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/gin-gonic/gin"
)

// SeriesHandler serves the public catalog and its admin management.
type SeriesHandler struct {
	seriesService service.SeriesService
}

// NewSeriesHandler creates a new SeriesHandler instance.
func NewSeriesHandler(seriesService service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService}
}

// List godoc
// @Summary All series
// @Tags series
// @Produce json
// @Success 200 {array} models.Series
// @Router /auth/series [get]
func (h *SeriesHandler) List(c *gin.Context) {
	series, err := h.seriesService.All(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load series")
		return
	}
	c.JSON(http.StatusOK, series)
}

// Top godoc
// @Summary Top rated series
// @Tags series
// @Produce json
// @Param page query int false "Page" default(1)
// @Success 200 {object} service.TopSeriesPage
// @Router /auth/series/top [get]
func (h *SeriesHandler) Top(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}

	result, err := h.seriesService.Top(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "failed to load top series")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary One series
// @Tags series
// @Produce json
// @Param id path int true "Series ID"
// @Success 200 {object} models.Series
// @Failure 404 {object} map[string]string
// @Router /auth/series/{id} [get]
func (h *SeriesHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	series, err := h.seriesService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load series")
		return
	}
	c.JSON(http.StatusOK, series)
}

// Page godoc
// @Summary Filtered catalog page
// @Tags series
// @Produce json
// @Param page path int true "Page"
// @Param limit path int true "Page size"
// @Param name query string false "Title substring"
// @Param genre query string false "Genre"
// @Param year query int false "Year"
// @Param status query string false "En emisión or Finalizada"
// @Success 200 {object} service.SeriesPage
// @Failure 400 {object} map[string]interface{}
// @Router /auth/appuser/series/page/{page}/{limit} [get]
func (h *SeriesHandler) Page(c *gin.Context) {
	var errs validation.Errors
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		errs.Add("page", "must be of type integer")
	}
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil {
		errs.Add("limit", "must be of type integer")
	}

	filter := models.SeriesFilter{
		Name:   c.Query("name"),
		Genre:  c.Query("genre"),
		Status: models.SeriesStatus(c.Query("status")),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("year", "must be of type integer")
		} else {
			filter.Year = &year
		}
	}
	if len(errs) > 0 {
		RespondValidation(c, errs)
		return
	}

	result, err := h.seriesService.Page(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(c, err, "failed to load series")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Genres godoc
// @Summary Distinct genres
// @Tags series
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /auth/appuser/series/genres [get]
func (h *SeriesHandler) Genres(c *gin.Context) {
	genres, err := h.seriesService.Genres(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// Create godoc
// @Summary Create a series
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.CreateSeriesRequest true "Series"
// @Success 201 {object} models.Series
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /auth/admin/series/create [post]
func (h *SeriesHandler) Create(c *gin.Context) {
	var req service.CreateSeriesRequest
	if !bindJSON(c, &req) {
		return
	}

	series, err := h.seriesService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "failed to create series")
		return
	}
	c.JSON(http.StatusCreated, series)
}

// Update godoc
// @Summary Update a series
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Series ID"
// @Param request body service.UpdateSeriesRequest true "Fields to change"
// @Success 200 {object} models.Series
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/admin/series/{id} [put]
func (h *SeriesHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateSeriesRequest
	if !bindJSON(c, &req) {
		return
	}

	series, err := h.seriesService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "failed to update series")
		return
	}
	c.JSON(http.StatusOK, series)
}

// Delete godoc
// @Summary Delete a series
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Series ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/admin/series/{id} [delete]
func (h *SeriesHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.seriesService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete series")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "series deleted"})
}
