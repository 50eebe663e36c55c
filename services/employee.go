package services

import (
	"fmt"
	"log"
	"time"

	"court_establishment_go/models"

	"gorm.io/gorm"
)

// EmployeeDetail is an employee row joined with post (and, where the listing
// spans courts, court and division) descriptors.
type EmployeeDetail struct {
	EmployeeID     uint       `json:"employee_id"`
	Name           string     `json:"name"`
	FatherName     string     `json:"father_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Qualifications string     `json:"qualifications"`
	Caste          string     `json:"caste"`
	Gender         string     `json:"gender"`
	Branch         string     `json:"branch"`
	DateOfJoining  *time.Time `json:"date_of_joining"`
	Address        string     `json:"address"`
	ACR            string     `gorm:"column:acr" json:"acr"`
	Salary         int        `json:"salary"`
	RetirementDate *time.Time `json:"retirement_date"`
	PostID         uint       `json:"post_id"`
	PostName       string     `json:"post_name"`
	PostClass      string     `json:"post_class"`
	CourtID        uint       `json:"court_id"`
	CourtName      string     `json:"court_name,omitempty"`
	CourtNumber    string     `json:"court_number,omitempty"`
	DivisionName   string     `json:"division_name,omitempty"`
}

// EmployeeInput carries the mutable fields of an employee record. Add derives
// the retirement date from DateOfBirth; Update stores RetirementDate exactly
// as supplied.
type EmployeeInput struct {
	Name           string     `json:"name"`
	FatherName     string     `json:"father_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Qualifications string     `json:"qualifications"`
	Caste          string     `json:"caste"`
	Gender         string     `json:"gender"`
	Branch         string     `json:"branch"`
	PostID         uint       `json:"post_id"`
	CourtID        uint       `json:"court_id"`
	DateOfJoining  *time.Time `json:"date_of_joining"`
	Address        string     `json:"address"`
	ACR            string     `json:"acr"`
	Salary         int        `json:"salary"`
	RetirementDate *time.Time `json:"retirement_date"`
}

const employeeDetailColumns = `
	e.employee_id, e.name, e.father_name, e.date_of_birth,
	e.qualifications, e.caste, e.gender, e.branch, e.date_of_joining,
	e.address, e.acr, e.salary, e.retirement_date,
	p.post_id, p.post_name, p.post_class, e.court_id`

// EmployeesByCourt returns the employees of one court with post descriptors,
// ordered by post class then name.
func EmployeesByCourt(db *gorm.DB, courtID uint) []EmployeeDetail {
	var rows []EmployeeDetail
	err := db.Raw(`
		SELECT `+employeeDetailColumns+`
		FROM employees e
		JOIN posts p ON e.post_id = p.post_id
		WHERE e.court_id = ?
		ORDER BY p.post_class, e.name
	`, courtID).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching court employees: %v", err)
		return nil
	}
	return rows
}

// EmployeesByDivision returns the employees across all courts of a division,
// ordered by court, post class, then name.
func EmployeesByDivision(db *gorm.DB, divisionID uint) []EmployeeDetail {
	var rows []EmployeeDetail
	err := db.Raw(`
		SELECT `+employeeDetailColumns+`
		FROM employees e
		JOIN posts p ON e.post_id = p.post_id
		JOIN courts c ON e.court_id = c.court_id
		WHERE c.parent_division_id = ?
		ORDER BY c.court_name, p.post_class, e.name
	`, divisionID).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching division employees: %v", err)
		return nil
	}
	return rows
}

// AllEmployees returns every employee in the system ordered by name.
func AllEmployees(db *gorm.DB) []EmployeeDetail {
	var rows []EmployeeDetail
	err := db.Raw(`
		SELECT ` + employeeDetailColumns + `
		FROM employees e
		JOIN posts p ON e.post_id = p.post_id
		ORDER BY e.name
	`).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching all employees: %v", err)
		return nil
	}
	return rows
}

// EmployeesRetiringBetween returns employees whose retirement date falls in
// the inclusive range, with court and division joined, ordered by retirement
// date then name.
func EmployeesRetiringBetween(db *gorm.DB, start, end time.Time) []EmployeeDetail {
	var rows []EmployeeDetail
	err := db.Raw(`
		SELECT `+employeeDetailColumns+`,
		       c.court_name, c.court_number, d.division_name
		FROM employees e
		JOIN posts p ON e.post_id = p.post_id
		JOIN courts c ON e.court_id = c.court_id
		JOIN divisions d ON c.parent_division_id = d.division_id
		WHERE e.retirement_date BETWEEN ? AND ?
		ORDER BY e.retirement_date, e.name
	`, start, end).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching retiring employees: %v", err)
		return nil
	}
	return rows
}

// AddEmployee inserts a new employee. When a date of birth is supplied the
// retirement date is computed and stored in the same transaction.
func AddEmployee(db *gorm.DB, input EmployeeInput) error {
	if input.Name == "" || input.PostID == 0 || input.CourtID == 0 {
		return fmt.Errorf("%w: name, post and court are required", ErrValidation)
	}
	if err := checkReferences(db, input.CourtID, input.PostID); err != nil {
		return err
	}

	employee := models.Employee{
		Name:           input.Name,
		FatherName:     input.FatherName,
		DateOfBirth:    input.DateOfBirth,
		Qualifications: input.Qualifications,
		Caste:          input.Caste,
		Gender:         input.Gender,
		Branch:         input.Branch,
		PostID:         input.PostID,
		CourtID:        input.CourtID,
		DateOfJoining:  input.DateOfJoining,
		Address:        input.Address,
		ACR:            input.ACR,
		Salary:         input.Salary,
	}
	if input.DateOfBirth != nil {
		retirement := CalculateRetirementDate(*input.DateOfBirth)
		employee.RetirementDate = &retirement
	}

	if err := db.Create(&employee).Error; err != nil {
		return fmt.Errorf("failed to add employee: %w", err)
	}
	return nil
}

// UpdateEmployee overwrites every mutable field of an employee, including the
// retirement date as supplied by the caller. No re-derivation happens here.
func UpdateEmployee(db *gorm.DB, employeeID uint, input EmployeeInput) error {
	if input.Name == "" || input.PostID == 0 || input.CourtID == 0 {
		return fmt.Errorf("%w: name, post and court are required", ErrValidation)
	}
	if err := checkReferences(db, input.CourtID, input.PostID); err != nil {
		return err
	}

	result := db.Model(&models.Employee{}).
		Where("employee_id = ?", employeeID).
		Updates(map[string]interface{}{
			"name":            input.Name,
			"father_name":     input.FatherName,
			"date_of_birth":   input.DateOfBirth,
			"qualifications":  input.Qualifications,
			"caste":           input.Caste,
			"gender":          input.Gender,
			"branch":          input.Branch,
			"post_id":         input.PostID,
			"date_of_joining": input.DateOfJoining,
			"address":         input.Address,
			"acr":             input.ACR,
			"salary":          input.Salary,
			"retirement_date": input.RetirementDate,
			"court_id":        input.CourtID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: employee %d does not exist", ErrValidation, employeeID)
	}
	return nil
}

// TransferEmployee reassigns an employee's court and post. No other field is
// touched; headcounts are derived at read time so nothing else changes.
func TransferEmployee(db *gorm.DB, employeeID, newCourtID, newPostID uint) error {
	if err := checkReferences(db, newCourtID, newPostID); err != nil {
		return err
	}
	result := db.Model(&models.Employee{}).
		Where("employee_id = ?", employeeID).
		Updates(map[string]interface{}{
			"court_id": newCourtID,
			"post_id":  newPostID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to transfer employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: employee %d does not exist", ErrValidation, employeeID)
	}
	return nil
}

// TerminateEmployee removes the employee record. This is a hard delete and is
// irreversible; confirmation is a caller concern.
func TerminateEmployee(db *gorm.DB, employeeID uint) error {
	result := db.Delete(&models.Employee{}, "employee_id = ?", employeeID)
	if result.Error != nil {
		return fmt.Errorf("failed to terminate employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: employee %d does not exist", ErrValidation, employeeID)
	}
	return nil
}

func checkReferences(db *gorm.DB, courtID, postID uint) error {
	var count int64
	if err := db.Model(&models.Court{}).Where("court_id = ?", courtID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check court: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: court %d does not exist", ErrValidation, courtID)
	}
	if err := db.Model(&models.Post{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: post %d does not exist", ErrValidation, postID)
	}
	return nil
}
