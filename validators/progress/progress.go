package progressValidator

import (
	"strconv"
	"strings"

	"traintrack/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateProgressRequest is the parsed POST /employee-progress body
type CreateProgressRequest struct {
	CourseID uint `json:"course_id"`
}

// UpdateProgressRequest is the parsed PUT /employee-progress/:id body.
// Zero-valued fields are left untouched (partial update).
type UpdateProgressRequest struct {
	ModulesCompleted uint `json:"modules_completed"`
	TotalModules     uint `json:"total_modules"`
}

// AddModuleRequest is the parsed POST /add_module body
type AddModuleRequest struct {
	CourseID uint `json:"course_id"`
	ModuleNo uint `json:"module_no"`
}

// CreateProgress validator middleware
func CreateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_id": "Course ID is required!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// UpdateProgress validator middleware
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedProgressUpdate", reqData)
		return c.Next()
	}
}

// AddModule validator middleware
func AddModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if reqData.ModuleNo < 1 {
			errors["module_no"] = "Module number must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// IDParam validates the :id (or named) route parameter as a positive integer
// and stores it under the given locals key.
func IDParam(param, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(localsKey, id)
		return c.Next()
	}
}
