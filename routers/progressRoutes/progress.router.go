package progressRoutes

import (
	progressController "traintrack/controllers/progress"
	"traintrack/middleware"
	progressValidator "traintrack/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App) {
	app.Get("/employee-progress", progressController.GetAllProgress)
	app.Post("/employee-progress", middleware.AuthRequired, progressValidator.CreateProgress(), progressController.CreateProgress)
	app.Put("/employee-progress/:id", middleware.AuthRequired, progressValidator.IDParam("id", "progressID"), progressValidator.UpdateProgress(), progressController.UpdateProgress)
	app.Post("/add_module", middleware.AuthRequired, progressValidator.AddModule(), progressController.AddModule)
	app.Get("/completed-courses", middleware.AuthRequired, progressController.GetCompletedCourses)
	app.Get("/course-progress/:courseId", middleware.AuthRequired, progressValidator.IDParam("courseId", "courseID"), progressController.GetCourseProgress)
}
