package handlers

import (
	"net/http"

	"court_establishment_go/db"
	"court_establishment_go/middleware"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user and establishes a session. Unknown
// username, wrong password and inactive account all produce the same
// response.
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	user := services.Login(db.DB, req.Username, req.Password)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler ends the current session.
func LogoutHandler(c echo.Context) error {
	if session := middleware.GetCurrentSession(c); session != nil {
		if err := services.DeleteSession(db.DB, session.Token); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to end session")
		}
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user.
func GetCurrentUserHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.GetCurrentUser(c))
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// RegisterUserHandler creates a new user account (admin only).
func RegisterUserHandler(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := services.SanitizeTextPtr(req.Email)
	user, err := services.RegisterUser(db.DB,
		services.SanitizeText(req.Username),
		req.Password,
		services.SanitizeText(req.FullName),
		req.Role, email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsersHandler returns all user accounts (admin only).
func ListUsersHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.AllUsers(db.DB))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePasswordHandler replaces the authenticated user's password and
// invalidates their other sessions.
func ChangePasswordHandler(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	if err := services.ChangePassword(db.DB, user, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return serviceError(err)
	}

	services.LogSecurityEvent("PASSWORD_CHANGED", user.ID, "password updated via API")
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}
