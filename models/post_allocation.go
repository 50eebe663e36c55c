package models

// PostAllocation records the sanctioned headcount for a post within a court.
// Rows are created implicitly the first time an admin sets a sanctioned number
// for a pair and are never deleted.
//
// The active headcount for the pair is always derived by counting employees at
// query time; it is deliberately not stored here so it cannot drift after
// transfers or terminations.
type PostAllocation struct {
	CourtID             uint `gorm:"primarykey;column:court_id;autoIncrement:false" json:"court_id"`
	PostID              uint `gorm:"primarykey;column:post_id;autoIncrement:false" json:"post_id"`
	SanctionedVacancies int  `gorm:"not null;default:0" json:"sanctioned_vacancies"`

	Court Court `gorm:"foreignKey:CourtID;references:CourtID" json:"-"`
	Post  Post  `gorm:"foreignKey:PostID;references:PostID" json:"-"`
}

// TableName specifies the table name for PostAllocation model
func (PostAllocation) TableName() string {
	return "post_courts"
}
