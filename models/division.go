package models

// Division is an organizational grouping of courts. The root division has no
// parent and acts only as the top-level container; it is never shown in
// navigation.
type Division struct {
	DivisionID       uint   `gorm:"primarykey;column:division_id" json:"division_id"`
	DivisionName     string `gorm:"not null" json:"division_name"`
	ParentDivisionID *uint  `gorm:"index" json:"parent_division_id"`

	Parent *Division `gorm:"foreignKey:ParentDivisionID;references:DivisionID" json:"-"`
}

// TableName specifies the table name for Division model
func (Division) TableName() string {
	return "divisions"
}

// IsOperational reports whether the division is selectable in navigation.
// Only divisions with a parent are operational.
func (d *Division) IsOperational() bool {
	return d.ParentDivisionID != nil
}
