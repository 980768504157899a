package utils

import (
	"os"
	"ramadan-meal-recommender/enums"
	"testing"

	"github.com/spf13/viper"
)

func TestEnvService_InitEnvFromEnvironment(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	os.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")
	os.Setenv("ROUTER_PORT", "9000")
	os.Setenv("AUDIT_DRIVER", " XLSX ")
	defer os.Unsetenv("SHEETS_SPREADSHEET_ID")
	defer os.Unsetenv("ROUTER_PORT")
	defer os.Unsetenv("AUDIT_DRIVER")

	var envService EnvService
	envService.InitEnv()

	if EnvConfig.Sheets.SpreadsheetID != "sheet-123" {
		t.Errorf("spreadsheet id = %q", EnvConfig.Sheets.SpreadsheetID)
	}
	if EnvConfig.Router.Port != 9000 {
		t.Errorf("port = %d", EnvConfig.Router.Port)
	}
	if EnvConfig.Audit.Driver != enums.AuditDriverXLSX {
		t.Errorf("driver = %q", EnvConfig.Audit.Driver)
	}
}

func TestEnvService_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	var envService EnvService
	envService.InitEnv()

	if EnvConfig.Dataset.Path != "epi_r.csv" {
		t.Errorf("dataset path = %q", EnvConfig.Dataset.Path)
	}
	if EnvConfig.Audit.Worksheet != "logs" {
		t.Errorf("worksheet = %q", EnvConfig.Audit.Worksheet)
	}
	if EnvConfig.RabbitMQ.Queue != "meal-recommend" {
		t.Errorf("queue = %q", EnvConfig.RabbitMQ.Queue)
	}
	if EnvConfig.Router.Port != 8501 {
		t.Errorf("port = %d", EnvConfig.Router.Port)
	}
}
