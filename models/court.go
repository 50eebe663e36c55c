package models

// Court is a single adjudicating unit staffed by employees. A court belongs
// to exactly one division and is never deleted through the exposed interface.
type Court struct {
	CourtID          uint    `gorm:"primarykey;column:court_id" json:"court_id"`
	CourtName        string  `gorm:"not null" json:"court_name"`
	CourtNumber      string  `json:"court_number"` // display code, may be empty
	OfficerName      *string `json:"officer_name"`
	Location         *string `json:"location"`
	ParentDivisionID uint    `gorm:"not null;index" json:"parent_division_id"`

	Division Division `gorm:"foreignKey:ParentDivisionID;references:DivisionID" json:"-"`
}

// TableName specifies the table name for Court model
func (Court) TableName() string {
	return "courts"
}
