package handlers

import (
	"errors"
	"net/http"

	"github.com/Biriato/ProyectoWeb/internal/storage"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/gin-gonic/gin"
)

// UploadsPath is the URL prefix stored images are served under.
const UploadsPath = "/uploads"

// UploadHandler accepts series artwork from administrators.
type UploadHandler struct {
	images  storage.ImageStore
	baseURL string
}

// NewUploadHandler creates a new UploadHandler. An empty baseURL makes image
// URLs point at the host the request came in on.
func NewUploadHandler(images storage.ImageStore, baseURL string) *UploadHandler {
	return &UploadHandler{images: images, baseURL: baseURL}
}

// Upload godoc
// @Summary Upload an image
// @Tags admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /auth/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		RespondValidation(c, validation.Errors{{Field: "image", Message: "image file is required"}})
		return
	}

	file, err := header.Open()
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to read upload")
		return
	}
	defer file.Close()

	name, err := h.images.Save(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyImage),
			errors.Is(err, storage.ErrNotAnImage),
			errors.Is(err, storage.ErrImageTooLarge):
			RespondValidation(c, validation.Errors{{Field: "image", Message: err.Error()}})
		default:
			LogAndRespondError(c, http.StatusInternalServerError, err, "failed to store image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": h.publicURL(c) + UploadsPath + "/" + name})
}

func (h *UploadHandler) publicURL(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host
}
