package worker

import (
	"encoding/json"
	"ramadan-meal-recommender/models"
	"ramadan-meal-recommender/structs"
	"time"

	"github.com/jinzhu/gorm"
)

const (
	JobReceived = "schedule.go.job.received"
	JobDone     = "schedule.go.job.done"
)

// Journal records job events.
type Journal interface {
	Insert(jobName string, data structs.JobLogModel) error
}

// ActivityJournal writes job events to the activity_log table.
type ActivityJournal struct {
	DB       *gorm.DB
	Location *time.Location
}

func NewActivityJournal(db *gorm.DB, location *time.Location) (*ActivityJournal, error) {
	if err := db.AutoMigrate(&models.ActivityLog{}).Error; err != nil {
		return nil, err
	}
	return &ActivityJournal{DB: db, Location: location}, nil
}

// 塞入執行紀錄的 log table
func (j *ActivityJournal) Insert(jobName string, data structs.JobLogModel) error {
	activityLogJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	insertTime := time.Now().In(j.Location)
	activityLogEntity := models.ActivityLog{
		LogName:     jobName,
		Description: "meal-recommender worker log",
		Properties:  string(activityLogJSON),
		CreatedAt:   &insertTime,
		UpdatedAt:   &insertTime,
	}
	return j.DB.Create(&activityLogEntity).Error
}
