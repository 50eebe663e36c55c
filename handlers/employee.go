package handlers

import (
	"fmt"
	"net/http"
	"time"

	"court_establishment_go/db"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
)

// employeeRequest carries the employee form fields. Dates arrive as
// YYYY-MM-DD strings from date inputs.
type employeeRequest struct {
	Name           string `json:"name"`
	FatherName     string `json:"father_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Qualifications string `json:"qualifications"`
	Caste          string `json:"caste"`
	Gender         string `json:"gender"`
	Branch         string `json:"branch"`
	PostID         uint   `json:"post_id"`
	CourtID        uint   `json:"court_id"`
	DateOfJoining  string `json:"date_of_joining"`
	Address        string `json:"address"`
	ACR            string `json:"acr"`
	Salary         int    `json:"salary"`
	RetirementDate string `json:"retirement_date"`
}

func (r *employeeRequest) toInput() (services.EmployeeInput, error) {
	input := services.EmployeeInput{
		Name:           services.SanitizeText(r.Name),
		FatherName:     services.SanitizeText(r.FatherName),
		Qualifications: services.SanitizeText(r.Qualifications),
		Caste:          r.Caste,
		Gender:         r.Gender,
		Branch:         services.SanitizeText(r.Branch),
		PostID:         r.PostID,
		CourtID:        r.CourtID,
		Address:        services.SanitizeText(r.Address),
		ACR:            r.ACR,
		Salary:         r.Salary,
	}

	var err error
	if input.DateOfBirth, err = parseOptionalDate(r.DateOfBirth); err != nil {
		return input, err
	}
	if input.DateOfJoining, err = parseOptionalDate(r.DateOfJoining); err != nil {
		return input, err
	}
	if input.RetirementDate, err = parseOptionalDate(r.RetirementDate); err != nil {
		return input, err
	}
	if input.Salary < 0 {
		return input, fmt.Errorf("%w: salary cannot be negative", services.ErrValidation)
	}
	return input, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := services.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListEmployeesHandler returns employees scoped by court_id or division_id
// query parameters, or all employees when unscoped.
func ListEmployeesHandler(c echo.Context) error {
	if c.QueryParam("court_id") != "" {
		courtID, err := pathQueryID(c, "court_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, services.EmployeesByCourt(db.DB, courtID))
	}
	if c.QueryParam("division_id") != "" {
		divisionID, err := pathQueryID(c, "division_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, services.EmployeesByDivision(db.DB, divisionID))
	}
	return c.JSON(http.StatusOK, services.AllEmployees(db.DB))
}

// ListRetiringEmployeesHandler returns employees retiring in an inclusive
// date range.
func ListRetiringEmployeesHandler(c echo.Context) error {
	start, err := services.ParseDate(c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
	}
	end, err := services.ParseDate(c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
	}
	return c.JSON(http.StatusOK, services.EmployeesRetiringBetween(db.DB, start, end))
}

// CreateEmployeeHandler adds an employee; the retirement date is derived from
// the date of birth when present.
func CreateEmployeeHandler(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return serviceError(err)
	}
	if err := services.AddEmployee(db.DB, input); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// UpdateEmployeeHandler overwrites an employee record, retirement date
// included, exactly as submitted.
func UpdateEmployeeHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return serviceError(err)
	}
	if err := services.UpdateEmployee(db.DB, id, input); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type transferRequest struct {
	NewCourtID uint `json:"new_court_id"`
	NewPostID  uint `json:"new_post_id"`
}

// TransferEmployeeHandler reassigns an employee's court and post.
func TransferEmployeeHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := services.TransferEmployee(db.DB, id, req.NewCourtID, req.NewPostID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TerminateEmployeeHandler removes an employee record permanently.
// Confirmation is the caller's responsibility.
func TerminateEmployeeHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := services.TerminateEmployee(db.DB, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type recomputeRequest struct {
	DateOfBirth string `json:"date_of_birth"`
}

// RecomputeRetirementHandler re-derives an employee's retirement date from a
// date of birth on explicit request.
func RecomputeRetirementHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req recomputeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	dob, err := services.ParseDate(req.DateOfBirth)
	if err != nil {
		return serviceError(err)
	}
	if err := services.UpdateRetirementDate(db.DB, id, dob); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
