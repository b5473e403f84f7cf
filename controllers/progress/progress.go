package progressController

import (
	"errors"

	"traintrack/database"
	"traintrack/middleware"
	"traintrack/models"
	progressValidator "traintrack/validators/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ensureProgress finds the progress row for the (employee, course) pair or
// creates one with zero completions. A create that loses a race to another
// request hits the unique pair index; the winner's row is returned instead of
// a duplicate.
func ensureProgress(tx *gorm.DB, userID uint, course *models.Course) (*models.EmployeeProgress, error) {
	var progress models.EmployeeProgress
	err := tx.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.EmployeeProgress{
		UserID:           userID,
		CourseID:         course.ID,
		ModulesCompleted: 0,
		TotalModules:     course.TotalModules,
		ProgressPercent:  0,
	}
	if err := tx.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if ferr := tx.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&progress).Error; ferr == nil {
				return &progress, nil
			}
		}
		return nil, err
	}
	return &progress, nil
}

// GetAllProgress returns every progress record.
func GetAllProgress(c *fiber.Ctx) error {
	var records []models.EmployeeProgress
	if err := database.Database.Db.Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress records!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress records fetched successfully!", records)
}

// CreateProgress lazily creates (or returns) the caller's progress record for
// a course. Idempotent: calling twice yields the same record.
func CreateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("employeeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*progressValidator.CreateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var progress *models.EmployeeProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, txErr = ensureProgress(tx, userID, &course)
		return txErr
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create progress record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Progress record ready.", progress)
}

// UpdateProgress sets the caller's own progress record by id. The body is an
// absolute set, not an increment; zero-valued fields are left untouched.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("employeeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progressID, ok := c.Locals("progressID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid progress ID!", nil)
	}

	reqData, ok := c.Locals("validatedProgressUpdate").(*progressValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var progress models.EmployeeProgress
	if err := db.First(&progress, progressID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress record not found!", nil)
	}

	// Ownership check: an employee may only mutate their own record.
	if progress.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You may only update your own progress!", nil)
	}

	if reqData.TotalModules > 0 {
		progress.TotalModules = reqData.TotalModules
	}
	if reqData.ModulesCompleted > 0 {
		progress.ModulesCompleted = reqData.ModulesCompleted
	}

	if progress.TotalModules > 0 && progress.ModulesCompleted > progress.TotalModules {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Modules completed cannot exceed total modules!", nil)
	}

	progress.ProgressPercent = progress.Percent()

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}

// AddModule records that the caller completed one module of a course and
// rolls the completion into the progress tally. The whole write sequence runs
// in one transaction; the unique triple index turns a racing duplicate into a
// conflict instead of a double count.
func AddModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("employeeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*progressValidator.AddModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.ModuleNo > course.TotalModules {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module number exceeds course total!", nil)
	}

	// Fast path for the common duplicate: same triple already recorded.
	var existing models.ModuleCompletion
	if err := db.Where("course_id = ? AND user_id = ? AND module_no = ?",
		course.ID, userID, reqData.ModuleNo).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module already completed!", nil)
	}

	completion := models.ModuleCompletion{
		CourseID: course.ID,
		UserID:   userID,
		ModuleNo: reqData.ModuleNo,
	}

	errConflict := errors.New("duplicate completion")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errConflict
			}
			return err
		}

		// Set-based tally: count distinct recorded modules for the pair and
		// refresh the denormalized total from the current course row.
		var completed int64
		if err := tx.Model(&models.ModuleCompletion{}).
			Where("course_id = ? AND user_id = ?", course.ID, userID).
			Count(&completed).Error; err != nil {
			return err
		}

		progress, err := ensureProgress(tx, userID, &course)
		if err != nil {
			return err
		}

		progress.ModulesCompleted = uint(completed)
		progress.TotalModules = course.TotalModules
		progress.ProgressPercent = progress.Percent()

		return tx.Save(progress).Error
	})
	if err != nil {
		if errors.Is(err, errConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module already completed!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record module completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module recorded successfully!", completion)
}

// GetCompletedCourses lists courses the caller has fully completed, or 204
// when there are none.
func GetCompletedCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("employeeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var records []models.EmployeeProgress
	if err := db.Where("user_id = ? AND progress_percent = ?", userID, 100.0).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed courses!", nil)
	}

	if len(records) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	courseIDs := make([]uint, 0, len(records))
	for _, record := range records {
		courseIDs = append(courseIDs, record.CourseID)
	}

	var courses []models.Course
	if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed courses fetched successfully!", courses)
}

// GetCourseProgress returns the composite view for one course: course
// metadata, the (lazily created) progress record and the completed module
// numbers.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("employeeId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var progress *models.EmployeeProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, txErr = ensureProgress(tx, userID, &course)
		return txErr
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course progress!", nil)
	}

	var completions []models.ModuleCompletion
	if err := db.Where("course_id = ? AND user_id = ?", course.ID, userID).
		Order("module_no asc").Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course progress!", nil)
	}

	completedModules := make([]uint, 0, len(completions))
	for _, completion := range completions {
		completedModules = append(completedModules, completion.ModuleNo)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", fiber.Map{
		"course":            course,
		"progress":          progress,
		"completed_modules": completedModules,
	})
}
