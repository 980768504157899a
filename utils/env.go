package utils

import (
	"fmt"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/structs"
	"strings"

	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.setDefaults()
	e.loadConfig()
	e.configToModel()
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("router.port", 8501)
	viper.SetDefault("server.timezone", "Africa/Cairo")
	viper.SetDefault("dataset.path", "epi_r.csv")
	viper.SetDefault("audit.driver", enums.AuditDriverSheets)
	viper.SetDefault("audit.worksheet", "logs")
	viper.SetDefault("xlsx.path", "audit_logs.xlsx")
	viper.SetDefault("rabbitmq.queue", "meal-recommend")
	viper.SetDefault("database.client", "mysql")
	viper.SetDefault("database.max_idle", 5)
	viper.SetDefault("database.max_open_conn", 10)
	viper.SetDefault("database.max_life_time", "5m")
	viper.SetDefault("log.dir", "logs")
}

func (e *EnvService) loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {

			// 找不到 config.yml 的話就抓取環境變數
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.Dataset.Path = viper.GetString("dataset.path")
	config.Dataset.Sheet = viper.GetString("dataset.sheet")
	config.Dataset.SyncToDB = viper.GetInt("dataset.sync_to_db")
	config.Audit.Driver = strings.ToLower(strings.TrimSpace(viper.GetString("audit.driver")))
	config.Audit.Worksheet = viper.GetString("audit.worksheet")
	config.Sheets.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	config.Sheets.CredentialsJSON = viper.GetString("sheets.credentials_json")
	config.Sheets.CredentialsFile = viper.GetString("sheets.credentials_file")
	config.XLSX.Path = viper.GetString("xlsx.path")
	config.RabbitMQ.Enable = viper.GetInt("rabbitmq.enable")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Log.Dir = viper.GetString("log.dir")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Server.AppAPI = viper.GetString("server.app_api")
	config.Server.Timezone = viper.GetString("server.timezone")
	config.Router.Port = viper.GetInt("router.port")
	EnvConfig = &config
}
