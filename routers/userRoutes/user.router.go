package userRoutes

import (
	userController "traintrack/controllers/userControllers"
	"traintrack/middleware"
	authValidator "traintrack/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/users", userController.ListUsers)
	app.Get("/users/:id", userController.GetUser)
	app.Post("/registration", middleware.AdminRequired, authValidator.Registration(), userController.Register)
	app.Post("/login", authValidator.Login(), userController.Login)
	app.Post("/logout", userController.Logout)
	app.Get("/dashboard", userController.Dashboard)
	app.Put("/users/:id", middleware.AdminRequired, userController.UpdateUser)
}
