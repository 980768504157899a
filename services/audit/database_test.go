package audit

import (
	"context"
	"path/filepath"
	"ramadan-meal-recommender/models"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func TestDatabaseStore_HeaderAndAppend(t *testing.T) {
	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := NewDatabaseStore(db)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}

	row := Row{Timestamp: time.Date(2025, 3, 2, 3, 15, 0, 0, time.UTC), Username: "dodo", Meal: "suhoor",
		CaloriesMax: 700, ProteinMin: 20, SodiumMax: 1200, TopN: 10, ResultsTitles: "A | B"}
	if err := store.Append(ctx, row); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit_logs rows = %d", len(logs))
	}
	got := logs[0]
	if got.Timestamp != "2025-03-02 03:15:00" || got.Username != "dodo" || got.TopN != 10 || got.ResultsTitles != "A | B" {
		t.Errorf("stored row = %+v", got)
	}
}

func TestDatabaseStore_ClosedDatabase(t *testing.T) {
	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	err = NewDatabaseStore(db).Append(context.Background(), Row{Timestamp: time.Now()})
	if _, ok := err.(*RemoteStoreError); !ok {
		t.Errorf("expected RemoteStoreError, got %v", err)
	}
}
