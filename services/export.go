package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// RosterHeader is the fixed column vocabulary of the employee roster export.
// Downstream consumers depend on these exact names and their order.
var RosterHeader = []string{
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

const rosterDateLayout = "2006-01-02"

// BuildCourtRoster assembles the roster rows (header first) for one court:
// every employee with the court descriptors and the per-post sanctioned and
// available figures alongside.
func BuildCourtRoster(db *gorm.DB, courtID uint) ([][]string, error) {
	court := CourtDetails(db, courtID)
	if court == nil {
		return nil, fmt.Errorf("%w: court %d does not exist", ErrValidation, courtID)
	}

	sanctionedByPost := map[uint]int{}
	availableByPost := map[uint]int{}
	for _, pv := range CourtPostsWithVacancies(db, courtID) {
		sanctionedByPost[pv.PostID] = pv.SanctionedVacancies
		availableByPost[pv.PostID] = pv.AvailableVacancies
	}

	officer := ""
	if court.OfficerName != nil {
		officer = *court.OfficerName
	}

	rows := [][]string{RosterHeader}
	for _, e := range EmployeesByCourt(db, courtID) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.EmployeeID),
			court.DivisionName,
			court.CourtNumber,
			court.CourtName,
			officer,
			e.PostName,
			e.PostClass,
			fmt.Sprintf("%d", sanctionedByPost[e.PostID]),
			fmt.Sprintf("%d", availableByPost[e.PostID]),
			e.Name,
			e.Gender,
			e.FatherName,
			formatRosterDate(e.DateOfBirth),
			e.Qualifications,
			formatRosterDate(e.RetirementDate),
		})
	}
	return rows, nil
}

// WriteRosterCSV writes roster rows as CSV.
func WriteRosterCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// RosterXLSX renders roster rows as an Excel workbook with a bold header.
func RosterXLSX(rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("failed to map cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func formatRosterDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(rosterDateLayout)
}
