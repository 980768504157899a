package main

import (
	"context"
	"fmt"
	"ramadan-meal-recommender/controllers/check"
	"ramadan-meal-recommender/controllers/meal"
	"ramadan-meal-recommender/database"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/router"
	"ramadan-meal-recommender/services/advisor"
	"ramadan-meal-recommender/services/audit"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/services/session"
	"ramadan-meal-recommender/services/trackLog"
	"ramadan-meal-recommender/services/worker"
	"ramadan-meal-recommender/templates"
	"ramadan-meal-recommender/utils"
	"time"

	"log"

	logLib "ramadan-meal-recommender/services/log"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func main() {

	// 初始化 env
	var envService utils.EnvService
	envService.InitEnv()
	fmt.Println("參數初始化成功...")
	config := utils.EnvConfig

	logService := logLib.NewLogService(config.Log)
	defer logService.Close()
	trackLog.LogTrackInit(logService)

	defer func() {
		logwr := logService.LoggerInit("main")
		logwr.WithFields(logrus.Fields{"task": "main", "name": "主程式"}).Error("recommender shutdown")
		fmt.Println("recommender shutdown")
	}()

	location, err := time.LoadLocation(config.Server.Timezone)
	failOnError(err, "Failed to load timezone "+config.Server.Timezone)

	// 載入資料集
	raw, err := dataset.Load(config.Dataset.Path, config.Dataset.Sheet)
	failOnError(err, "Failed to load dataset")
	table, err := dataset.Prepare(raw)
	failOnError(err, "Failed to prepare dataset")
	trackLog.Info(fmt.Sprintf("dataset %s ready, %d meals", config.Dataset.Path, table.Len()), true)

	var db *gorm.DB
	if config.Audit.Driver == enums.AuditDriverDatabase || config.Dataset.SyncToDB == 1 {
		db, err = database.InitDatabasePool(config.Database)
		failOnError(err, "Failed to connect to database")
		defer db.Close()
	}
	if config.Dataset.SyncToDB == 1 {
		failOnError(dataset.SyncToDatabase(db, table), "Failed to sync dataset")
		trackLog.Info("meal_records synced", true)
	}

	store, err := audit.NewStore(config, db)
	failOnError(err, "Failed to create audit store")
	auditLogger := audit.NewLogger(store, location)
	if err := auditLogger.EnsureHeader(context.Background()); err != nil {
		trackLog.Warn(fmt.Sprintf("audit store not ready: %s", err.Error()), true)
	}

	mealAdvisor := advisor.New(table, auditLogger, func(username string) logrus.FieldLogger {
		return logService.LoggerInit(username)
	})

	checker := &check.Checker{Table: table, AuditDriver: config.Audit.Driver}
	if config.RabbitMQ.Enable == 1 {
		recommendWorker := worker.NewRecommendWorker(config.RabbitMQ.Queue, config.Server.AppAPI, mealAdvisor)
		if db != nil {
			journal, err := worker.NewActivityJournal(db, location)
			failOnError(err, "Failed to prepare activity_log")
			recommendWorker.Journal = journal
		}
		failOnError(recommendWorker.Start(config.RabbitMQ.Domain), "Failed to start queue worker")
		checker.Connection = worker.ConnectionName
	}

	pages, err := templates.Load()
	failOnError(err, "Failed to parse templates")

	sessions := session.NewRegistry(meal.SessionTTL)
	go sessions.RunSweeper(context.Background(), time.Hour)

	route := router.Router(pages, meal.New(mealAdvisor, sessions), checker)
	if err := route.Run(fmt.Sprintf(":%d", config.Router.Port)); err != nil {
		trackLog.Error(err.Error(), true)
	}
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}
