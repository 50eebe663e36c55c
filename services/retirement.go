package services

import (
	"fmt"
	"log"
	"time"

	"court_establishment_go/models"

	"gorm.io/gorm"
)

// RetirementAgeYears is the superannuation age for court staff.
const RetirementAgeYears = 58

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD", ErrValidation)
	}

	return parsedTime, nil
}

// CalculateRetirementDate returns the last calendar day of the birth month in
// the year the employee turns RetirementAgeYears. A December birth month rolls
// into the next January before stepping back one day, landing on December 31.
func CalculateRetirementDate(dateOfBirth time.Time) time.Time {
	retirementYear := dateOfBirth.Year() + RetirementAgeYears
	retirementMonth := dateOfBirth.Month()

	var nextMonth time.Time
	if retirementMonth == time.December {
		nextMonth = time.Date(retirementYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	} else {
		nextMonth = time.Date(retirementYear, retirementMonth+1, 1, 0, 0, 0, 0, time.UTC)
	}

	return nextMonth.AddDate(0, 0, -1)
}

// UpdateRetirementDate recomputes and stores the retirement date for an
// employee from the given date of birth. Used for the explicit recompute
// action; edits never re-derive the date on their own.
func UpdateRetirementDate(db *gorm.DB, employeeID uint, dateOfBirth time.Time) error {
	retirementDate := CalculateRetirementDate(dateOfBirth)
	result := db.Model(&models.Employee{}).
		Where("employee_id = ?", employeeID).
		Update("retirement_date", retirementDate)
	if result.Error != nil {
		return fmt.Errorf("failed to update retirement date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Printf("No employee %d found for retirement date update", employeeID)
	}
	return nil
}
