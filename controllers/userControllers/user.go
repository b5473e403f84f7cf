package userController

import (
	"strconv"
	"strings"

	"traintrack/database"
	"traintrack/middleware"
	"traintrack/models"
	"traintrack/utils"
	authValidator "traintrack/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// ListUsers returns every employee account, or 204 when the table is empty.
func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	if len(users) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// GetUser returns a single employee account by id.
func GetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// Register creates a new employee account. Admin-gated by the router.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.RegistrationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := utils.HashPassword(reqData.Password)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Client-supplied ids are ignored; the store always assigns a fresh one.
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: hashedPassword,
		Role:     reqData.Role,
	}

	if err := db.Create(&newUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// Login authenticates by exact email match and writes the session bag.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Login failed", nil)
	}

	if !utils.CheckPassword(reqData.Password, user.Password) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid password", nil)
	}

	if err := middleware.WriteSession(c, user.ID, user.Role); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful", fiber.Map{
		"userId": user.ID,
	})
}

// Logout clears the caller's session bag.
func Logout(c *fiber.Ctx) error {
	if err := middleware.ClearSession(c); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear session!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully.", nil)
}

// Dashboard returns the logged-in employee's identity. It distinguishes a
// missing session (401) from a session whose stored id is unparseable (400)
// and from an account that has since disappeared (404).
func Dashboard(c *fiber.Ctx) error {
	userIDStr, _, ok := middleware.SessionValues(c)
	if !ok || userIDStr == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User is not logged in", nil)
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil || userID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Welcome to your dashboard", fiber.Map{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	})
}

// UpdateUser partially updates an employee account: non-empty fields in the
// body overwrite stored fields, everything else is left untouched.
// Admin-gated by the router.
func UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData := new(authValidator.RegistrationRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Email != "" {
		user.Email = reqData.Email
	}
	if reqData.Role != "" {
		user.Role = reqData.Role
	}
	if reqData.Password != "" {
		hashedPassword, err := utils.HashPassword(reqData.Password)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
		user.Password = hashedPassword
	}

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}
