// Package routes defines HTTP routes for the series service.
package routes

import (
	"net/http"

	"github.com/Biriato/ProyectoWeb/internal/handlers"
	"github.com/Biriato/ProyectoWeb/internal/metrics"
	"github.com/Biriato/ProyectoWeb/internal/middleware"
	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	List   *handlers.ListHandler
	Series *handlers.SeriesHandler
	Admin  *handlers.AdminHandler
	Upload *handlers.UploadHandler
	Health *handlers.HealthHandler
}

// Dependencies are the shared components the routes need besides handlers.
type Dependencies struct {
	Logger         *zap.Logger
	JWT            service.JWTService
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Images         storage.ImageStore
	CORS           middleware.CORSConfig
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	router.Use(middleware.RequestLogger(logger), middleware.Recovery(), middleware.CORS(deps.CORS))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}
	// Uploaded images
	if deps.Images != nil {
		router.StaticFS(handlers.UploadsPath, deps.Images.FileSystem())
	}

	public := router.Group("/auth")
	{
		public.POST("/", h.Auth.Register)
		public.POST("/login", h.Auth.Login)

		public.GET("/series", h.Series.List)
		public.GET("/series/top", h.Series.Top)
		public.GET("/series/:id", h.Series.Get)
		public.GET("/appuser/series/page/:page/:limit", h.Series.Page)
		public.GET("/appuser/series/genres", h.Series.Genres)
	}

	authed := router.Group("/auth", middleware.Authenticate(deps.JWT))
	{
		authed.POST("/logout", h.Auth.Logout)
		authed.POST("/change-password", h.Auth.ChangePassword)
		authed.PUT("/update-profile", h.Auth.UpdateProfile)
		authed.GET("/me", h.Auth.Me)

		authed.POST("/list/add-series", h.List.AddSeries)
		authed.PUT("/my-list/update-series/:seriesId", h.List.UpdateSeries)
		authed.GET("/my-list", h.List.MyList)
		authed.GET("/my-list/all", h.List.AllSeries)
		authed.DELETE("/my-list/:seriesId", h.List.RemoveSeries)
	}

	admin := authed.Group("", middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/upload", h.Upload.Upload)

		admin.POST("/admin/series/create", h.Series.Create)
		admin.PUT("/admin/series/:id", h.Series.Update)
		admin.DELETE("/admin/series/:id", h.Series.Delete)

		admin.POST("/admin/create", h.Admin.CreateUser)
		admin.GET("/admin/users", h.Admin.ListUsers)
		admin.GET("/admin/users/:id", h.Admin.GetUser)
		admin.PUT("/admin/users/update/:id", h.Admin.UpdateUser)
		admin.DELETE("/:id", h.Admin.DeleteUser)
	}
}
