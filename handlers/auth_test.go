package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"court_establishment_go/middleware"
	"court_establishment_go/models"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	database := setupTestDB(t)
	_, err := services.RegisterUser(database, "clerk1", "password1", "Test Clerk", models.RoleUser, nil)
	assert.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		body := `{"username":"clerk1","password":"password1"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var returned models.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &returned))
		assert.Equal(t, "clerk1", returned.Username)

		cookies := rec.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("Wrong password", func(t *testing.T) {
		body := `{"username":"clerk1","password":"wrong"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid username or password", he.Message)
	})

	t.Run("Unknown username matches wrong-password response", func(t *testing.T) {
		body := `{"username":"nobody","password":"password1"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid username or password", he.Message)
	})

	t.Run("Missing fields", func(t *testing.T) {
		body := `{"username":"clerk1"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	database := setupTestDB(t)
	user, err := services.RegisterUser(database, "clerk1", "password1", "Test Clerk", models.RoleUser, nil)
	assert.NoError(t, err)
	session, err := services.CreateSession(database, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/logout", nil)
	c.Set(middleware.ContextKeySession, session)

	assert.NoError(t, LogoutHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The session is gone
	validated, err := services.ValidateSession(database, session.Token)
	assert.Error(t, err)
	assert.Nil(t, validated)
}

func TestRegisterUserHandler(t *testing.T) {
	setupTestDB(t)

	t.Run("Creates user", func(t *testing.T) {
		body := `{"username":"viewer1","password":"password1","full_name":"A Viewer","role":"viewer"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/users", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		assert.NoError(t, RegisterUserHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var returned models.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &returned))
		assert.Equal(t, "viewer1", returned.Username)
		assert.Equal(t, models.RoleViewer, returned.Role)
	})

	t.Run("Duplicate username conflicts", func(t *testing.T) {
		body := `{"username":"viewer1","password":"password1","full_name":"Again","role":"viewer"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/users", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := RegisterUserHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, err.(*echo.HTTPError).Code)
	})

	t.Run("Unknown role rejected", func(t *testing.T) {
		body := `{"username":"viewer2","password":"password1","full_name":"B Viewer","role":"superuser"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/users", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := RegisterUserHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	database := setupTestDB(t)
	user, err := services.RegisterUser(database, "clerk1", "password1", "Test Clerk", models.RoleUser, nil)
	assert.NoError(t, err)

	t.Run("Wrong current password", func(t *testing.T) {
		body := `{"current_password":"bad","new_password":"newpassword","confirm_password":"newpassword"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/me/password", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c.Set(middleware.ContextKeyUser, user)

		err := ChangePasswordHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("Success", func(t *testing.T) {
		body := `{"current_password":"password1","new_password":"newpassword","confirm_password":"newpassword"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/me/password", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, ChangePasswordHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotNil(t, services.Login(database, "clerk1", "newpassword"))
	})
}
