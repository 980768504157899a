package models

import "time"

// AuditLog mirrors one appended audit row when the database driver is used.
type AuditLog struct {
	ID            int64      `gorm:"column:id;primary_key" json:"id"`
	Timestamp     string     `gorm:"column:timestamp" json:"timestamp"`
	Username      string     `gorm:"column:username" json:"username"`
	Meal          string     `gorm:"column:meal" json:"meal"`
	CaloriesMax   int        `gorm:"column:calories_max" json:"calories_max"`
	ProteinMin    int        `gorm:"column:protein_min" json:"protein_min"`
	SodiumMax     int        `gorm:"column:sodium_max" json:"sodium_max"`
	TopN          int        `gorm:"column:top_n" json:"top_n"`
	ResultsTitles string     `gorm:"column:results_titles;type:text" json:"results_titles"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (a *AuditLog) TableName() string {
	return "audit_logs"
}
