package services

import (
	"fmt"
	"log"

	"court_establishment_go/config"
	"court_establishment_go/models"

	"gorm.io/gorm"
)

// defaultPosts is the standard establishment post catalogue seeded into an
// empty store.
var defaultPosts = []models.Post{
	{PostName: "Senior Judge", PostClass: models.PostClassI},
	{PostName: "Additional Judge", PostClass: models.PostClassI},
	{PostName: "Senior Clerk", PostClass: models.PostClassII},
	{PostName: "Junior Clerk", PostClass: models.PostClassII},
	{PostName: "Senior Stenographer", PostClass: models.PostClassII},
	{PostName: "Junior Stenographer", PostClass: models.PostClassII},
	{PostName: "Court Manager", PostClass: models.PostClassII},
	{PostName: "Office Superintendent", PostClass: models.PostClassII},
	{PostName: "Senior Peon", PostClass: models.PostClassIV},
	{PostName: "Junior Peon", PostClass: models.PostClassIV},
	{PostName: "Senior Driver", PostClass: models.PostClassIV},
	{PostName: "Junior Driver", PostClass: models.PostClassIV},
	{PostName: "Senior Security Guard", PostClass: models.PostClassIV},
	{PostName: "Junior Security Guard", PostClass: models.PostClassIV},
}

// EnsureRootDivision creates the top-level container division when no root
// division exists, and returns it. The root never appears in navigation.
func EnsureRootDivision(db *gorm.DB, name string) (*models.Division, error) {
	var root models.Division
	err := db.Where("parent_division_id IS NULL").First(&root).Error
	if err == nil {
		return &root, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up root division: %w", err)
	}

	root = models.Division{DivisionName: name}
	if err := db.Create(&root).Error; err != nil {
		return nil, fmt.Errorf("failed to create root division: %w", err)
	}
	log.Printf("[SEED] Created root division: %s", name)
	return &root, nil
}

// SeedDefaultPosts fills the post catalogue when the posts table is empty.
func SeedDefaultPosts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&defaultPosts).Error; err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Printf("[SEED] Seeded %d default posts", len(defaultPosts))
	return nil
}

// SeedAdminFromEnv creates the bootstrap admin account from configuration.
// Credentials must come from the environment; no default is ever written. If
// the users table is empty and no credentials are configured, a warning is
// logged so the operator knows nobody can log in.
func SeedAdminFromEnv(db *gorm.DB, cfg *config.Config) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		if userCount == 0 {
			log.Println("[WARNING] No users exist and ADMIN_USERNAME/ADMIN_PASSWORD are not set; nobody can log in until an admin is created")
		}
		return nil
	}

	var existing models.User
	if err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error; err == nil {
		log.Printf("[SEED] User %s already exists, skipping admin seed", cfg.AdminUsername)
		return nil
	}

	var email *string
	if cfg.AdminEmail != "" {
		email = &cfg.AdminEmail
	}

	if _, err := RegisterUser(db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName, models.RoleAdmin, email); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Printf("[SEED] Created admin user: %s", cfg.AdminUsername)
	return nil
}
