package userController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"traintrack/config"
	"traintrack/database"
	"traintrack/middleware"
	"traintrack/models"
	courseRoutes "traintrack/routers/courseRoutes"
	progressRoutes "traintrack/routers/progressRoutes"
	userRoutes "traintrack/routers/userRoutes"
	"traintrack/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		SaltRound:          bcrypt.MinCost,
		SessionIdleMinutes: 30,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	middleware.InitSessionStore()

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	return app
}

func seedUser(t *testing.T, email, password, role string) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: hash, Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func jsonRequest(method, path, body, cookie string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func loginAs(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	req := jsonRequest("POST", "/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "traintrack_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login response did not set a session cookie")
	return ""
}

func TestListUsersEmptyTable(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest("GET", "/users", "", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestListAndGetUsers(t *testing.T) {
	app := setupTestApp(t)
	user := seedUser(t, "a@x.com", "password1", models.RoleEmployee)

	resp, err := app.Test(jsonRequest("GET", "/users", "", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", fmt.Sprintf("/users/%d", user.ID), "", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	require.Equal(t, "a@x.com", data["email"])

	resp, err = app.Test(jsonRequest("GET", "/users/999", "", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegistrationRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "emp@x.com", "password1", models.RoleEmployee)

	draft := `{"name":"New Hire","email":"n@x.com","password":"password1","role":"employee"}`

	// No session at all
	resp, err := app.Test(jsonRequest("POST", "/registration", draft, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Authenticated but not admin
	cookie := loginAs(t, app, "emp@x.com", "password1")
	resp, err = app.Test(jsonRequest("POST", "/registration", draft, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Neither attempt may have written a row
	var count int64
	database.Database.Db.Model(&models.User{}).Where("email = ?", "n@x.com").Count(&count)
	require.Zero(t, count)
}

func TestRegistrationAsAdmin(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin@x.com", "password1", models.RoleAdmin)
	cookie := loginAs(t, app, "admin@x.com", "password1")

	resp, err := app.Test(jsonRequest("POST", "/registration",
		`{"name":"New Hire","email":"n@x.com","password":"password1"}`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	require.NotZero(t, data["ID"])
	require.Equal(t, "employee", data["role"]) // defaulted
	_, leaked := data["password"]
	require.False(t, leaked, "password hash must not appear in responses")

	// Stored password is hashed, not plaintext
	var stored models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "n@x.com").First(&stored).Error)
	require.NotEqual(t, "password1", stored.Password)

	// Duplicate email is a conflict
	resp, err = app.Test(jsonRequest("POST", "/registration",
		`{"name":"Other","email":"n@x.com","password":"password1"}`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Malformed body
	resp, err = app.Test(jsonRequest("POST", "/registration", `{"email":"bad"`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "a@x.com", "password1", models.RoleEmployee)

	// Unknown email
	resp, err := app.Test(jsonRequest("POST", "/login", `{"email":"ghost@x.com","password":"password1"}`, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Login failed", decodeBody(t, resp)["message"])

	// Wrong password for an existing email
	resp, err = app.Test(jsonRequest("POST", "/login", `{"email":"a@x.com","password":"wrongpass"}`, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid password", decodeBody(t, resp)["message"])
}

func TestLoginSuccessAndDashboard(t *testing.T) {
	app := setupTestApp(t)
	user := seedUser(t, "a@x.com", "password1", models.RoleAdmin)

	// Dashboard without a session
	resp, err := app.Test(jsonRequest("GET", "/dashboard", "", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	cookie := loginAs(t, app, "a@x.com", "password1")

	resp, err = app.Test(jsonRequest("GET", "/dashboard", "", cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	require.Equal(t, float64(user.ID), data["userId"])
	require.Equal(t, "a@x.com", data["email"])
	require.Equal(t, "admin", data["role"])
}

func TestLogoutClearsSession(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "a@x.com", "password1", models.RoleEmployee)
	cookie := loginAs(t, app, "a@x.com", "password1")

	resp, err := app.Test(jsonRequest("POST", "/logout", "", cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/dashboard", "", cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateUserPartialMerge(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin@x.com", "password1", models.RoleAdmin)
	target := seedUser(t, "emp@x.com", "password1", models.RoleEmployee)
	cookie := loginAs(t, app, "admin@x.com", "password1")

	// Only the name is supplied; everything else must survive
	resp, err := app.Test(jsonRequest("PUT", fmt.Sprintf("/users/%d", target.ID),
		`{"name":"Renamed"}`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, target.ID).Error)
	require.Equal(t, "Renamed", stored.Name)
	require.Equal(t, "emp@x.com", stored.Email)
	require.Equal(t, models.RoleEmployee, stored.Role)

	// Missing target
	resp, err = app.Test(jsonRequest("PUT", "/users/999", `{"name":"x"}`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	target := seedUser(t, "emp@x.com", "password1", models.RoleEmployee)

	resp, err := app.Test(jsonRequest("PUT", fmt.Sprintf("/users/%d", target.ID),
		`{"name":"Hacked"}`, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	cookie := loginAs(t, app, "emp@x.com", "password1")
	resp, err = app.Test(jsonRequest("PUT", fmt.Sprintf("/users/%d", target.ID),
		`{"name":"Hacked"}`, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, target.ID).Error)
	require.Equal(t, "Test User", stored.Name)
}
