package services

import (
	"fmt"
	"log"

	"court_establishment_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostVacancy is one row of the per-court post/vacancy table. Posts with no
// allocation row report zero sanctioned strength.
type PostVacancy struct {
	PostID              uint   `json:"post_id"`
	PostName            string `json:"post_name"`
	PostClass           string `json:"post_class"`
	SanctionedVacancies int    `json:"sanctioned_vacancies"`
	ActiveEmployees     int    `json:"active_employees_count"`
	AvailableVacancies  int    `json:"available_vacancies"`
}

// AvailableVacancies is sanctioned minus active. The result may be negative
// when a pair is over-subscribed and is displayed as-is.
func AvailableVacancies(sanctioned, active int) int {
	return sanctioned - active
}

// ActiveEmployeeCount derives the active headcount for a court/post pair by
// counting employee rows. The count is never stored, so it cannot drift after
// transfers or terminations.
func ActiveEmployeeCount(db *gorm.DB, courtID, postID uint) (int, error) {
	var count int64
	err := db.Model(&models.Employee{}).
		Where("court_id = ? AND post_id = ?", courtID, postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return int(count), nil
}

// SetSanctionedVacancies upserts the allocation row for a court/post pair.
// A new value below the current active headcount is rejected with
// ErrConstraintViolation, except when it equals the already-stored sanctioned
// value: re-submitting an unchanged figure stays a no-op even for pairs that
// are already over-subscribed.
func SetSanctionedVacancies(db *gorm.DB, courtID, postID uint, sanctioned int) error {
	if sanctioned < 0 {
		return fmt.Errorf("%w: sanctioned vacancies cannot be negative", ErrValidation)
	}

	var existing models.PostAllocation
	err := db.Where("court_id = ? AND post_id = ?", courtID, postID).First(&existing).Error
	if err == nil && existing.SanctionedVacancies == sanctioned {
		return nil
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to read allocation: %w", err)
	}

	active, err := ActiveEmployeeCount(db, courtID, postID)
	if err != nil {
		return err
	}
	if sanctioned < active {
		return fmt.Errorf("%w: sanctioned vacancies (%d) below active headcount (%d)",
			ErrConstraintViolation, sanctioned, active)
	}

	allocation := models.PostAllocation{
		CourtID:             courtID,
		PostID:              postID,
		SanctionedVacancies: sanctioned,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "court_id"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sanctioned_vacancies"}),
	}).Create(&allocation).Error
	if err != nil {
		return fmt.Errorf("failed to upsert allocation: %w", err)
	}
	return nil
}

// CourtPostsWithVacancies returns every post with the sanctioned, active and
// available figures for the given court. Posts without an allocation row show
// zero sanctioned and zero active.
func CourtPostsWithVacancies(db *gorm.DB, courtID uint) []PostVacancy {
	var rows []PostVacancy
	err := db.Raw(`
		SELECT p.post_id, p.post_name, p.post_class,
		       COALESCE(pc.sanctioned_vacancies, 0) AS sanctioned_vacancies,
		       (SELECT COUNT(*) FROM employees e
		        WHERE e.court_id = ? AND e.post_id = p.post_id) AS active_employees
		FROM posts p
		LEFT JOIN post_courts pc ON pc.post_id = p.post_id AND pc.court_id = ?
		ORDER BY p.post_class, p.post_name
	`, courtID, courtID).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching court posts: %v", err)
		return nil
	}
	for i := range rows {
		rows[i].AvailableVacancies = AvailableVacancies(rows[i].SanctionedVacancies, rows[i].ActiveEmployees)
	}
	return rows
}

// VacancyCountByCourt sums available vacancies over a court's allocations.
func VacancyCountByCourt(db *gorm.DB, courtID uint) int {
	var total int
	err := db.Raw(`
		SELECT COALESCE(SUM(pc.sanctioned_vacancies -
		       (SELECT COUNT(*) FROM employees e
		        WHERE e.court_id = pc.court_id AND e.post_id = pc.post_id)), 0)
		FROM post_courts pc
		WHERE pc.court_id = ?
	`, courtID).Scan(&total).Error
	if err != nil {
		log.Printf("Error fetching vacancy count by court: %v", err)
		return 0
	}
	return total
}

// VacancyCountByDivision sums available vacancies over all courts of a division.
func VacancyCountByDivision(db *gorm.DB, divisionID uint) int {
	var total int
	err := db.Raw(`
		SELECT COALESCE(SUM(pc.sanctioned_vacancies -
		       (SELECT COUNT(*) FROM employees e
		        WHERE e.court_id = pc.court_id AND e.post_id = pc.post_id)), 0)
		FROM post_courts pc
		JOIN courts c ON pc.court_id = c.court_id
		WHERE c.parent_division_id = ?
	`, divisionID).Scan(&total).Error
	if err != nil {
		log.Printf("Error fetching vacancy count by division: %v", err)
		return 0
	}
	return total
}

// SystemVacancyCount sums available vacancies across the entire system.
func SystemVacancyCount(db *gorm.DB) int {
	var total int
	err := db.Raw(`
		SELECT COALESCE(SUM(pc.sanctioned_vacancies -
		       (SELECT COUNT(*) FROM employees e
		        WHERE e.court_id = pc.court_id AND e.post_id = pc.post_id)), 0)
		FROM post_courts pc
	`).Scan(&total).Error
	if err != nil {
		log.Printf("Error fetching system vacancy count: %v", err)
		return 0
	}
	return total
}
