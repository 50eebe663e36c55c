package services

import (
	"testing"
	"time"

	"court_establishment_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRetirementTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Division{}, &models.Court{}, &models.Post{}, &models.Employee{})
	return db
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("1985-06-15")
	assert.NoError(t, err)
	assert.Equal(t, 1985, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15/06/1985")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDate("1985-13-40")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalculateRetirementDate(t *testing.T) {
	cases := []struct {
		name string
		dob  string
		want string
	}{
		{"mid-year birth", "1985-06-15", "2043-06-30"},
		{"december rolls to year end", "1970-12-01", "2028-12-31"},
		{"non-leap february", "1988-02-10", "2046-02-28"},
		{"leap february", "1962-02-05", "2020-02-29"},
		{"january birth", "1990-01-31", "2048-01-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dob, err := ParseDate(tc.dob)
			assert.NoError(t, err)
			got := CalculateRetirementDate(dob)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestCalculateRetirementDateIgnoresDayOfBirth(t *testing.T) {
	first, _ := ParseDate("1985-06-01")
	last, _ := ParseDate("1985-06-30")

	// Same month, same retirement day regardless of birth day
	assert.Equal(t, CalculateRetirementDate(first), CalculateRetirementDate(last))
}

func TestUpdateRetirementDate(t *testing.T) {
	db := setupRetirementTestDB()

	division := models.Division{DivisionName: "Root"}
	assert.NoError(t, db.Create(&division).Error)
	court := models.Court{CourtName: "District Court", CourtNumber: "1", ParentDivisionID: division.DivisionID}
	assert.NoError(t, db.Create(&court).Error)
	post := models.Post{PostName: "Senior Clerk", PostClass: models.PostClassII}
	assert.NoError(t, db.Create(&post).Error)

	employee := models.Employee{Name: "A. Kumar", PostID: post.PostID, CourtID: court.CourtID}
	assert.NoError(t, db.Create(&employee).Error)

	dob, _ := ParseDate("1980-03-20")
	assert.NoError(t, UpdateRetirementDate(db, employee.EmployeeID, dob))

	var stored models.Employee
	assert.NoError(t, db.First(&stored, employee.EmployeeID).Error)
	assert.NotNil(t, stored.RetirementDate)
	assert.Equal(t, "2038-03-31", stored.RetirementDate.Format("2006-01-02"))

	// Unknown employee is a no-op, not an error
	assert.NoError(t, UpdateRetirementDate(db, 9999, dob))
}
