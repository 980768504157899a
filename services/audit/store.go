package audit

import (
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/structs"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

// NewStore picks the audit store named by the configuration. db is only
// needed for the database driver.
func NewStore(config *structs.EnviromentModel, db *gorm.DB) (Store, error) {
	switch config.Audit.Driver {
	case enums.AuditDriverSheets, "":
		return NewSheetStore(SheetConfig{
			SpreadsheetID:   config.Sheets.SpreadsheetID,
			Worksheet:       config.Audit.Worksheet,
			CredentialsJSON: config.Sheets.CredentialsJSON,
			CredentialsFile: config.Sheets.CredentialsFile,
		}), nil
	case enums.AuditDriverXLSX:
		return NewXLSXStore(config.XLSX.Path, config.Audit.Worksheet), nil
	case enums.AuditDriverDatabase:
		if db == nil {
			return nil, errors.New("audit driver database needs a database connection")
		}
		return NewDatabaseStore(db), nil
	}
	return nil, errors.Errorf("unknown audit driver %q", config.Audit.Driver)
}
