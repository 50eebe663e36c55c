package services

import (
	"testing"

	"court_establishment_go/config"
	"court_establishment_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Division{}, &models.Post{}, &models.User{}, &models.Session{})
	return db
}

func TestEnsureRootDivision(t *testing.T) {
	db := setupSeedTestDB()

	root, err := EnsureRootDivision(db, "District and Sessions Court")
	assert.NoError(t, err)
	assert.NotNil(t, root)
	assert.Equal(t, "District and Sessions Court", root.DivisionName)
	assert.Nil(t, root.ParentDivisionID)

	// Idempotent: the existing root is returned, not a second one
	again, err := EnsureRootDivision(db, "Some Other Name")
	assert.NoError(t, err)
	assert.Equal(t, root.DivisionID, again.DivisionID)
	assert.Equal(t, "District and Sessions Court", again.DivisionName)

	var count int64
	db.Model(&models.Division{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedDefaultPosts(t *testing.T) {
	db := setupSeedTestDB()

	assert.NoError(t, SeedDefaultPosts(db))

	posts := AllPosts(db)
	assert.Len(t, posts, len(defaultPosts))

	// Re-seeding an already populated catalogue changes nothing
	assert.NoError(t, SeedDefaultPosts(db))
	assert.Len(t, AllPosts(db), len(defaultPosts))
}

func TestSeedDefaultPostsSkipsNonEmptyCatalogue(t *testing.T) {
	db := setupSeedTestDB()
	assert.NoError(t, AddPost(db, "Custom Post", models.PostClassIII, ""))

	assert.NoError(t, SeedDefaultPosts(db))

	posts := AllPosts(db)
	assert.Len(t, posts, 1)
	assert.Equal(t, "Custom Post", posts[0].PostName)
}

func TestSeedAdminFromEnv(t *testing.T) {
	db := setupSeedTestDB()
	cfg := &config.Config{
		AdminUsername: "registrar",
		AdminPassword: "bootstrap-secret",
		AdminFullName: "System Administrator",
	}

	assert.NoError(t, SeedAdminFromEnv(db, cfg))

	user := Login(db, "registrar", "bootstrap-secret")
	assert.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Re-running never overwrites the existing account
	cfg.AdminPassword = "changed-secret"
	assert.NoError(t, SeedAdminFromEnv(db, cfg))
	assert.NotNil(t, Login(db, "registrar", "bootstrap-secret"))
	assert.Nil(t, Login(db, "registrar", "changed-secret"))
}

func TestSeedAdminFromEnvUnconfigured(t *testing.T) {
	db := setupSeedTestDB()

	// Missing credentials only log a warning; no account is invented
	assert.NoError(t, SeedAdminFromEnv(db, &config.Config{}))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
