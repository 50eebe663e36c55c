package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"court_establishment_go/config"
	"court_establishment_go/db"
	"court_establishment_go/models"
	"court_establishment_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Division{},
		&models.Court{},
		&models.Post{},
		&models.PostAllocation{},
		&models.Employee{},
		&models.User{},
		&models.Session{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

// seedTestEstablishment creates a division, court and post for handler tests.
func seedTestEstablishment(t *testing.T, database *gorm.DB) (*models.Court, *models.Post) {
	root, err := services.EnsureRootDivision(database, "Root")
	assert.NoError(t, err)
	assert.NoError(t, services.AddDivision(database, "Civil Division", root.DivisionID))
	division := services.OperationalDivisions(database)[0]
	assert.NoError(t, services.AddCourt(database, "Civil Court", "1", nil, nil, division.DivisionID))
	court := services.CourtsByDivision(database, division.DivisionID)[0]
	assert.NoError(t, services.AddPost(database, "Senior Clerk", models.PostClassII, ""))
	post := services.AllPosts(database)[0]
	return &court, &post
}
