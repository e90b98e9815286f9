package routes

import (
	"coursebay/backend/catalog"
	"coursebay/backend/config"
	"coursebay/backend/controllers"
	"coursebay/backend/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, svc *catalog.Service, tracker *progress.Tracker, db *gorm.DB, cfg *config.Config) {
	// Courses routes
	coursesController := controllers.NewCoursesController(svc, cfg)
	app.Get("/courses", coursesController.GetCourses)
	app.Post("/courses/sync", coursesController.SyncCourses)
	app.Post("/courses/calculate-hours", coursesController.CalculateHours)
	app.Post("/courses/sync-udemy-pending", coursesController.EnrichPending)
	app.Post("/courses/sync-udemy-forced", coursesController.EnrichForced)
	app.Get("/courses/:folderName", coursesController.GetCourse)
	app.Put("/courses/:folderName", coursesController.UpdateCourse)

	// Video streaming
	videosController := controllers.NewVideosController(cfg)
	app.Get("/video/:folderName/:section/:video", videosController.Stream)

	// Profiles and progress routes
	profilesController := controllers.NewProfilesController(db, tracker)
	app.Get("/profiles", profilesController.GetProfiles)
	app.Post("/profiles", profilesController.CreateProfile)
	app.Put("/profiles/:profileName", profilesController.RenameProfile)
	app.Delete("/profiles/:profileName", profilesController.DeleteProfile)
	app.Get("/profiles/:profileName/progress/:folderName", profilesController.GetProgress)
	app.Post("/profiles/:profileName/progress/:folderName", profilesController.SaveProgress)

	// Generated image assets
	app.Static("/public", cfg.PublicDir)
}
