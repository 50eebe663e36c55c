package models

// Post classes (rank tiers)
const (
	PostClassI   = "Class I"
	PostClassII  = "Class II"
	PostClassIII = "Class III"
	PostClassIV  = "Class IV"
)

// PostClasses lists the valid rank tiers in seniority order.
var PostClasses = []string{PostClassI, PostClassII, PostClassIII, PostClassIV}

// Post is a job title/rank, global across all courts. Posts are immutable
// once referenced by employees or allocations; no update or delete operation
// is exposed.
type Post struct {
	PostID      uint   `gorm:"primarykey;column:post_id" json:"post_id"`
	PostName    string `gorm:"not null" json:"post_name"`
	PostClass   string `gorm:"not null" json:"post_class"`
	Description string `json:"description"`
}

// TableName specifies the table name for Post model
func (Post) TableName() string {
	return "posts"
}

// ValidPostClass reports whether class is one of the fixed rank tiers.
func ValidPostClass(class string) bool {
	for _, c := range PostClasses {
		if c == class {
			return true
		}
	}
	return false
}
