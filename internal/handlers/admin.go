package handlers

import (
	"fmt"
	"net/http"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves user management for administrators.
type AdminHandler struct {
	userService service.UserService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.CreateUserRequest true "Account"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /auth/admin/create [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers godoc
// @Summary Page through users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param name query string false "Name substring"
// @Param email query string false "Email substring"
// @Param role query string false "user or admin"
// @Success 200 {object} service.UserPage
// @Failure 400 {object} map[string]interface{}
// @Router /auth/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", service.DefaultUserPageSize)
	if !ok {
		return
	}

	filter := models.UserFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Role:  models.Role(c.Query("role")),
	}

	result, err := h.userService.Page(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(c, err, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser godoc
// @Summary One user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /auth/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /auth/admin/users/update/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user with their list and recomputes affected scores
// @Tags admin
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("user %d deleted", id)})
}
