package models

import "time"

// Caste categories
const (
	CasteGeneral = "General"
	CasteOBC     = "OBC"
	CasteSC      = "SC"
	CasteST      = "ST"
	CasteOther   = "Other"
)

// Gender values
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// ACR ratings
const (
	ACROutstanding = "Outstanding"
	ACRExcellent   = "Excellent"
	ACRVeryGood    = "Very Good"
	ACRGood        = "Good"
	ACRAverage     = "Average"
	ACRPoor        = "Poor"
)

var (
	Castes     = []string{CasteGeneral, CasteOBC, CasteSC, CasteST, CasteOther}
	Genders    = []string{GenderMale, GenderFemale, GenderOther}
	ACRRatings = []string{ACROutstanding, ACRExcellent, ACRVeryGood, ACRGood, ACRAverage, ACRPoor}
)

// Employee is a personnel record. RetirementDate is derived from DateOfBirth
// at creation time but remains independently editable; it is only re-derived
// on an explicit recompute request.
type Employee struct {
	EmployeeID     uint       `gorm:"primarykey;column:employee_id" json:"employee_id"`
	Name           string     `gorm:"not null" json:"name"`
	FatherName     string     `json:"father_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Qualifications string     `json:"qualifications"`
	Caste          string     `json:"caste"`
	Gender         string     `json:"gender"`
	Branch         string     `json:"branch"` // historical court label, free text
	PostID         uint       `gorm:"not null;index" json:"post_id"`
	CourtID        uint       `gorm:"not null;index" json:"court_id"`
	DateOfJoining  *time.Time `json:"date_of_joining"`
	Address        string     `json:"address"`
	ACR            string     `gorm:"column:acr" json:"acr"`
	Salary         int        `gorm:"not null;default:0" json:"salary"`
	RetirementDate *time.Time `json:"retirement_date"`

	Post  Post  `gorm:"foreignKey:PostID;references:PostID" json:"-"`
	Court Court `gorm:"foreignKey:CourtID;references:CourtID" json:"-"`
}

// TableName specifies the table name for Employee model
func (Employee) TableName() string {
	return "employees"
}
