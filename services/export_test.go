package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"court_establishment_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupExportTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Division{}, &models.Court{}, &models.Post{}, &models.PostAllocation{}, &models.Employee{})
	return db
}

func seedRosterData(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	root, err := EnsureRootDivision(db, "Root")
	assert.NoError(t, err)
	assert.NoError(t, AddDivision(db, "Civil Division", root.DivisionID))
	division := OperationalDivisions(db)[0]
	officer := "Judge A. Sharma"
	assert.NoError(t, AddCourt(db, "Civil Court", "3", &officer, nil, division.DivisionID))
	court := CourtsByDivision(db, division.DivisionID)[0]
	assert.NoError(t, AddPost(db, "Senior Clerk", models.PostClassII, ""))
	post := AllPosts(db)[0]
	assert.NoError(t, SetSanctionedVacancies(db, court.CourtID, post.PostID, 3))
	assert.NoError(t, AddEmployee(db, EmployeeInput{
		Name:           "A. Kumar",
		FatherName:     "B. Kumar",
		DateOfBirth:    mustDate(t, "1985-06-15"),
		Gender:         models.GenderMale,
		Qualifications: "B.A.",
		PostID:         post.PostID,
		CourtID:        court.CourtID,
	}))
	return court.CourtID
}

func TestRosterHeaderVocabulary(t *testing.T) {
	expected := []string{
		"Employee ID",
		"Division",
		"Court Number",
		"Court Name",
		"Officer Name",
		"Post",
		"Class",
		"Sanctioned Vacancies",
		"Vacancies",
		"Employee Name",
		"Gender",
		"Father's Name",
		"Date of Birth",
		"Qualification",
		"Retirement Date",
	}
	assert.Equal(t, expected, RosterHeader)
}

func TestBuildCourtRoster(t *testing.T) {
	db := setupExportTestDB()
	courtID := seedRosterData(t, db)

	rows, err := BuildCourtRoster(db, courtID)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, RosterHeader, rows[0])

	row := rows[1]
	assert.Len(t, row, len(RosterHeader))
	assert.Equal(t, "Civil Division", row[1])
	assert.Equal(t, "3", row[2])
	assert.Equal(t, "Civil Court", row[3])
	assert.Equal(t, "Judge A. Sharma", row[4])
	assert.Equal(t, "Senior Clerk", row[5])
	assert.Equal(t, models.PostClassII, row[6])
	assert.Equal(t, "3", row[7]) // sanctioned
	assert.Equal(t, "2", row[8]) // available
	assert.Equal(t, "A. Kumar", row[9])
	assert.Equal(t, models.GenderMale, row[10])
	assert.Equal(t, "B. Kumar", row[11])
	assert.Equal(t, "1985-06-15", row[12])
	assert.Equal(t, "B.A.", row[13])
	assert.Equal(t, "2043-06-30", row[14])
}

func TestBuildCourtRosterUnknownCourt(t *testing.T) {
	db := setupExportTestDB()

	_, err := BuildCourtRoster(db, 9999)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildCourtRosterEmptyCourt(t *testing.T) {
	db := setupExportTestDB()
	root, _ := EnsureRootDivision(db, "Root")
	assert.NoError(t, AddCourt(db, "Empty Court", "9", nil, nil, root.DivisionID))
	court := CourtsByDivision(db, root.DivisionID)[0]

	rows, err := BuildCourtRoster(db, court.CourtID)
	assert.NoError(t, err)
	// Header only
	assert.Len(t, rows, 1)
}

func TestWriteRosterCSV(t *testing.T) {
	db := setupExportTestDB()
	courtID := seedRosterData(t, db)
	rows, err := BuildCourtRoster(db, courtID)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, WriteRosterCSV(&buf, rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestRosterXLSX(t *testing.T) {
	db := setupExportTestDB()
	courtID := seedRosterData(t, db)
	rows, err := BuildCourtRoster(db, courtID)
	assert.NoError(t, err)

	buf, err := RosterXLSX(rows)
	assert.NoError(t, err)
	assert.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows("Employees")
	assert.NoError(t, err)
	assert.Equal(t, RosterHeader, cells[0])
	assert.Equal(t, "A. Kumar", cells[1][9])
}
