package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"court_establishment_go/db"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
)

// maxSnapshotSize bounds an uploaded dump at 64 MiB.
const maxSnapshotSize = 64 << 20

// ExportSnapshotHandler serializes the whole store to a SQL text dump. With
// ?backup=true the dump is additionally written to backup storage.
func ExportSnapshotHandler(c echo.Context) error {
	dump, err := services.ExportSnapshot(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Snapshot export failed")
	}

	if c.QueryParam("backup") == "true" {
		key, err := services.StoreSnapshotBackup(c.Request().Context(), dump)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Snapshot backup failed")
		}
		c.Response().Header().Set("X-Backup-Key", key)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=snapshot_%s.sql", time.Now().Format("20060102_150405")))
	return c.Blob(http.StatusOK, "application/sql", []byte(dump))
}

// ImportSnapshotHandler restores the store from a SQL text dump. The restore
// is all-or-nothing; a malformed dump leaves the store untouched.
func ImportSnapshotHandler(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSnapshotSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}
	if len(body) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Snapshot body is empty")
	}
	if len(body) > maxSnapshotSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Snapshot too large")
	}

	if err := services.ImportSnapshot(db.DB, string(body)); err != nil {
		log.Printf("Snapshot import failed: %v", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Snapshot import failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportRosterCSVHandler streams the employee roster of one court as CSV.
func ExportRosterCSVHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rows, err := services.BuildCourtRoster(db.DB, id)
	if err != nil {
		return serviceError(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=employees_court_%d.csv", id))
	c.Response().WriteHeader(http.StatusOK)
	return services.WriteRosterCSV(c.Response().Writer, rows)
}

// ExportRosterXLSXHandler streams the employee roster of one court as an
// Excel workbook.
func ExportRosterXLSXHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rows, err := services.BuildCourtRoster(db.DB, id)
	if err != nil {
		return serviceError(err)
	}
	buf, err := services.RosterXLSX(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Roster export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=employees_court_%d.xlsx", id))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
