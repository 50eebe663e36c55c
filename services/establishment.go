package services

import (
	"fmt"
	"log"

	"court_establishment_go/models"

	"gorm.io/gorm"
)

// CourtWithDivision is a court row joined with its division name, used by the
// all-courts listing.
type CourtWithDivision struct {
	CourtID      uint    `json:"court_id"`
	CourtName    string  `json:"court_name"`
	CourtNumber  string  `json:"court_number"`
	OfficerName  *string `json:"officer_name"`
	Location     *string `json:"location"`
	DivisionID   uint    `json:"division_id"`
	DivisionName string  `json:"division_name"`
}

// OperationalDivisions returns the divisions selectable in navigation: every
// division with a parent. The root division is excluded.
func OperationalDivisions(db *gorm.DB) []models.Division {
	var divisions []models.Division
	err := db.Where("parent_division_id IS NOT NULL").
		Order("division_name").
		Find(&divisions).Error
	if err != nil {
		log.Printf("Error fetching divisions: %v", err)
		return nil
	}
	return divisions
}

// AllDivisions returns every division, root included.
func AllDivisions(db *gorm.DB) []models.Division {
	var divisions []models.Division
	if err := db.Order("division_name").Find(&divisions).Error; err != nil {
		log.Printf("Error fetching all divisions: %v", err)
		return nil
	}
	return divisions
}

// DivisionByID returns one division, or nil when it does not exist.
func DivisionByID(db *gorm.DB, divisionID uint) *models.Division {
	var division models.Division
	err := db.First(&division, "division_id = ?", divisionID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Error fetching division details: %v", err)
		}
		return nil
	}
	return &division
}

// AddDivision creates an operational division under the given parent.
func AddDivision(db *gorm.DB, name string, parentDivisionID uint) error {
	if name == "" {
		return fmt.Errorf("%w: division name is required", ErrValidation)
	}
	if DivisionByID(db, parentDivisionID) == nil {
		return fmt.Errorf("%w: parent division %d does not exist", ErrValidation, parentDivisionID)
	}
	division := models.Division{
		DivisionName:     name,
		ParentDivisionID: &parentDivisionID,
	}
	if err := db.Create(&division).Error; err != nil {
		return fmt.Errorf("failed to add division: %w", err)
	}
	return nil
}

// CourtsByDivision returns the courts under one division, by name.
func CourtsByDivision(db *gorm.DB, divisionID uint) []models.Court {
	var courts []models.Court
	err := db.Where("parent_division_id = ?", divisionID).
		Order("court_name").
		Find(&courts).Error
	if err != nil {
		log.Printf("Error fetching courts: %v", err)
		return nil
	}
	return courts
}

// AllCourts returns every court joined with its division name, ordered by
// division then court name.
func AllCourts(db *gorm.DB) []CourtWithDivision {
	var rows []CourtWithDivision
	err := db.Raw(`
		SELECT c.court_id, c.court_name, c.court_number, c.officer_name, c.location,
		       d.division_id, d.division_name
		FROM courts c
		JOIN divisions d ON c.parent_division_id = d.division_id
		ORDER BY d.division_name, c.court_name
	`).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching all courts: %v", err)
		return nil
	}
	return rows
}

// CourtDetails returns one court with its division joined, or nil when it
// does not exist.
func CourtDetails(db *gorm.DB, courtID uint) *CourtWithDivision {
	var row CourtWithDivision
	err := db.Raw(`
		SELECT c.court_id, c.court_name, c.court_number, c.officer_name, c.location,
		       d.division_id, d.division_name
		FROM courts c
		JOIN divisions d ON c.parent_division_id = d.division_id
		WHERE c.court_id = ?
	`, courtID).Scan(&row).Error
	if err != nil {
		log.Printf("Error fetching court details: %v", err)
		return nil
	}
	if row.CourtID == 0 {
		return nil
	}
	return &row
}

// AddCourt creates a court under a division.
func AddCourt(db *gorm.DB, name, number string, officerName, location *string, divisionID uint) error {
	if name == "" {
		return fmt.Errorf("%w: court name is required", ErrValidation)
	}
	if DivisionByID(db, divisionID) == nil {
		return fmt.Errorf("%w: division %d does not exist", ErrValidation, divisionID)
	}
	court := models.Court{
		CourtName:        name,
		CourtNumber:      number,
		OfficerName:      officerName,
		Location:         location,
		ParentDivisionID: divisionID,
	}
	if err := db.Create(&court).Error; err != nil {
		return fmt.Errorf("failed to add court: %w", err)
	}
	return nil
}

// UpdateCourtDetails overwrites the mutable fields of a court in place.
func UpdateCourtDetails(db *gorm.DB, courtID uint, name, number string, officerName, location *string) error {
	if name == "" {
		return fmt.Errorf("%w: court name is required", ErrValidation)
	}
	result := db.Model(&models.Court{}).
		Where("court_id = ?", courtID).
		Updates(map[string]interface{}{
			"court_name":   name,
			"court_number": number,
			"officer_name": officerName,
			"location":     location,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update court details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: court %d does not exist", ErrValidation, courtID)
	}
	return nil
}

// AllPosts returns the global post catalogue ordered by class then name.
func AllPosts(db *gorm.DB) []models.Post {
	var posts []models.Post
	if err := db.Order("post_class, post_name").Find(&posts).Error; err != nil {
		log.Printf("Error fetching posts: %v", err)
		return nil
	}
	return posts
}

// AddPost creates a post in the global catalogue.
func AddPost(db *gorm.DB, name, class, description string) error {
	if name == "" {
		return fmt.Errorf("%w: post name is required", ErrValidation)
	}
	if !models.ValidPostClass(class) {
		return fmt.Errorf("%w: unknown post class %q", ErrValidation, class)
	}
	post := models.Post{
		PostName:    name,
		PostClass:   class,
		Description: description,
	}
	if err := db.Create(&post).Error; err != nil {
		return fmt.Errorf("failed to add post: %w", err)
	}
	return nil
}

// EmployeeCountByCourt returns the headcount of one court.
func EmployeeCountByCourt(db *gorm.DB, courtID uint) int {
	var count int64
	err := db.Model(&models.Employee{}).Where("court_id = ?", courtID).Count(&count).Error
	if err != nil {
		log.Printf("Error fetching employee count: %v", err)
		return 0
	}
	return int(count)
}

// EmployeeCountByDivision returns the headcount across all courts of a division.
func EmployeeCountByDivision(db *gorm.DB, divisionID uint) int {
	var count int64
	err := db.Model(&models.Employee{}).
		Joins("JOIN courts ON employees.court_id = courts.court_id").
		Where("courts.parent_division_id = ?", divisionID).
		Count(&count).Error
	if err != nil {
		log.Printf("Error fetching employee count by division: %v", err)
		return 0
	}
	return int(count)
}

// TotalEmployeeCount returns the system-wide headcount.
func TotalEmployeeCount(db *gorm.DB) int {
	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		log.Printf("Error fetching total employee count: %v", err)
		return 0
	}
	return int(count)
}
