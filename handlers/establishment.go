package handlers

import (
	"net/http"

	"court_establishment_go/db"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
)

// ListDivisionsHandler returns the operational divisions (root excluded).
func ListDivisionsHandler(c echo.Context) error {
	if c.QueryParam("all") == "true" {
		return c.JSON(http.StatusOK, services.AllDivisions(db.DB))
	}
	return c.JSON(http.StatusOK, services.OperationalDivisions(db.DB))
}

// GetDivisionHandler returns one division.
func GetDivisionHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	division := services.DivisionByID(db.DB, id)
	if division == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Division not found")
	}
	return c.JSON(http.StatusOK, division)
}

type divisionRequest struct {
	DivisionName     string `json:"division_name"`
	ParentDivisionID uint   `json:"parent_division_id"`
}

// CreateDivisionHandler creates an operational division (admin only).
func CreateDivisionHandler(c echo.Context) error {
	var req divisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := services.AddDivision(db.DB, services.SanitizeText(req.DivisionName), req.ParentDivisionID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// ListDivisionCourtsHandler returns the courts under one division.
func ListDivisionCourtsHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services.CourtsByDivision(db.DB, id))
}

// ListCourtsHandler returns all courts with division names joined.
func ListCourtsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.AllCourts(db.DB))
}

// GetCourtHandler returns one court with its division.
func GetCourtHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	court := services.CourtDetails(db.DB, id)
	if court == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Court not found")
	}
	return c.JSON(http.StatusOK, court)
}

type courtRequest struct {
	CourtName        string `json:"court_name"`
	CourtNumber      string `json:"court_number"`
	OfficerName      string `json:"officer_name"`
	Location         string `json:"location"`
	ParentDivisionID uint   `json:"parent_division_id"`
}

// CreateCourtHandler creates a court under a division (admin only).
func CreateCourtHandler(c echo.Context) error {
	var req courtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	err := services.AddCourt(db.DB,
		services.SanitizeText(req.CourtName),
		services.SanitizeText(req.CourtNumber),
		services.SanitizeTextPtr(req.OfficerName),
		services.SanitizeTextPtr(req.Location),
		req.ParentDivisionID)
	if err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// UpdateCourtHandler edits a court's details in place (admin only).
func UpdateCourtHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req courtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	err = services.UpdateCourtDetails(db.DB, id,
		services.SanitizeText(req.CourtName),
		services.SanitizeText(req.CourtNumber),
		services.SanitizeTextPtr(req.OfficerName),
		services.SanitizeTextPtr(req.Location))
	if err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPostsHandler returns the global post catalogue.
func ListPostsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.AllPosts(db.DB))
}

type postRequest struct {
	PostName    string `json:"post_name"`
	PostClass   string `json:"post_class"`
	Description string `json:"description"`
}

// CreatePostHandler adds a post to the global catalogue (admin only).
func CreatePostHandler(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	err := services.AddPost(db.DB,
		services.SanitizeText(req.PostName),
		req.PostClass,
		services.SanitizeText(req.Description))
	if err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// ListCourtPostsHandler returns the per-court post/vacancy table.
func ListCourtPostsHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services.CourtPostsWithVacancies(db.DB, id))
}

type sanctionedRequest struct {
	SanctionedVacancies int `json:"sanctioned_vacancies"`
}

// SetSanctionedHandler sets the sanctioned strength for a court/post pair
// (admin only). Values below the current active headcount are rejected.
func SetSanctionedHandler(c echo.Context) error {
	courtID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	postID, err := pathID(c, "postID")
	if err != nil {
		return err
	}
	var req sanctionedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := services.SetSanctionedVacancies(db.DB, courtID, postID, req.SanctionedVacancies); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type statsResponse struct {
	EmployeeCount int `json:"employee_count"`
	VacancyCount  int `json:"vacancy_count"`
}

// StatsHandler returns employee and vacancy totals scoped to a court, a
// division, or the whole system.
func StatsHandler(c echo.Context) error {
	if c.QueryParam("court_id") != "" {
		courtID, err := pathQueryID(c, "court_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, statsResponse{
			EmployeeCount: services.EmployeeCountByCourt(db.DB, courtID),
			VacancyCount:  services.VacancyCountByCourt(db.DB, courtID),
		})
	}
	if c.QueryParam("division_id") != "" {
		divisionID, err := pathQueryID(c, "division_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, statsResponse{
			EmployeeCount: services.EmployeeCountByDivision(db.DB, divisionID),
			VacancyCount:  services.VacancyCountByDivision(db.DB, divisionID),
		})
	}
	return c.JSON(http.StatusOK, statsResponse{
		EmployeeCount: services.TotalEmployeeCount(db.DB),
		VacancyCount:  services.SystemVacancyCount(db.DB),
	})
}
