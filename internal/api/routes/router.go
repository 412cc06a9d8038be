package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yash-kumarsharma/vellum/internal/api/handlers"
	"github.com/yash-kumarsharma/vellum/internal/api/middleware"
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/internal/realtime"
	"github.com/yash-kumarsharma/vellum/internal/repository"
	"github.com/yash-kumarsharma/vellum/pkg/storage"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, uploads *storage.UploadStore) {
	// init
	hub := realtime.NewHub()
	repos := repository.NewRepositories(db)
	services := application.New(repos, hub)
	h := handlers.New(services, hub, uploads)

	r.GET("/ws/forms", h.WS.Serve)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.User.Register)
			auth.POST("/login", h.User.Login)
			auth.GET("/me", middleware.JWTAuthMiddleware(), h.User.Me)
			auth.PUT("/profile", middleware.JWTAuthMiddleware(), h.User.UpdateProfile)
			auth.PUT("/password", middleware.JWTAuthMiddleware(), h.User.UpdatePassword)
		}

		// Public endpoints: form view, response submission, uploads.
		api.GET("/forms/public/:id", h.Form.GetPublicForm)
		api.POST("/responses/:formId", h.Submission.Submit)
		api.POST("/uploads/:formId", h.Upload.Upload)

		authed := api.Group("/")
		authed.Use(middleware.JWTAuthMiddleware())
		{
			forms := authed.Group("/forms")
			{
				forms.POST("", h.Form.CreateForm)
				forms.GET("", h.Form.ListForms)
				forms.GET("/:id", h.Form.GetForm)
				forms.PUT("/:id", h.Form.UpdateForm)
				forms.DELETE("/:id", h.Form.DeleteForm)
			}

			authed.GET("/responses/:formId", h.Submission.ListSubmissions)

			exports := authed.Group("/exports")
			{
				exports.GET("/:formId/excel", h.Export.ExportExcel)
				exports.GET("/:formId/csv", h.Export.ExportCSV)
			}

			authed.GET("/analytics/:formId", h.Analytics.Summary)

			collabs := authed.Group("/collaborators")
			{
				collabs.POST("/:formId", h.Collaborator.AddCollaborator)
				collabs.GET("/:formId", h.Collaborator.ListCollaborators)
			}
		}
	}
}
