package courseRoutes

import (
	courseController "traintrack/controllers/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	app.Get("/courses", courseController.GetAllCourses)
	app.Get("/courses/:id", courseController.GetCourse)
}
