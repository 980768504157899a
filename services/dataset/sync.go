package dataset

import (
	"ramadan-meal-recommender/models"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

const syncChunkSize = 3000

// SyncToDatabase replaces meal_records with the prepared rows.
func SyncToDatabase(db *gorm.DB, table *Table) error {
	if err := db.AutoMigrate(&models.MealRecord{}).Error; err != nil {
		return errors.Wrap(err, "migrate meal_records")
	}

	tx := db.Begin()
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "begin meal sync")
	}

	if err := tx.Delete(models.MealRecord{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "clear meal_records")
	}

	insertRecords := make([]interface{}, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		insertRecords = append(insertRecords, table.At(i))
	}

	// 批次 insert
	if err := gormbulk.BulkInsert(tx, insertRecords, syncChunkSize); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "bulk insert meal_records")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit meal sync")
	}
	return nil
}
