package audit

import (
	"context"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/models"
	"time"

	"github.com/jinzhu/gorm"
)

// DatabaseStore writes audit rows into the audit_logs table.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// EnsureHeader migrates the table; the column set plays the header's role.
func (s *DatabaseStore) EnsureHeader(ctx context.Context) error {
	return remoteErr("migrate audit_logs", s.db.AutoMigrate(&models.AuditLog{}).Error)
}

func (s *DatabaseStore) Append(ctx context.Context, row Row) error {
	entity := AuditLogEntity(row)
	return remoteErr("insert audit_logs", s.db.Create(&entity).Error)
}

// AuditLogEntity maps a row to its table model.
func AuditLogEntity(row Row) models.AuditLog {
	now := time.Now()
	return models.AuditLog{
		Timestamp:     row.Timestamp.Format(enums.TimestampLayout),
		Username:      row.Username,
		Meal:          row.Meal,
		CaloriesMax:   row.CaloriesMax,
		ProteinMin:    row.ProteinMin,
		SodiumMax:     row.SodiumMax,
		TopN:          row.TopN,
		ResultsTitles: row.ResultsTitles,
		CreatedAt:     &now,
	}
}
