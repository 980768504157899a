package enums

const (
	SlotSuhoor = "suhoor"
	SlotIftar  = "iftar"
	SlotEither = "either"

	AuditDriverSheets   = "sheets"
	AuditDriverXLSX     = "xlsx"
	AuditDriverDatabase = "database"

	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"

	ColumnTitle      = "title"
	ColumnCalories   = "calories"
	ColumnProtein    = "protein"
	ColumnFat        = "fat"
	ColumnSodium     = "sodium"
	ColumnMealSlot   = "meal_slot"
	ColumnWhy        = "why"
	ColumnFinalScore = "final_score"
	ColumnKind       = "kind"

	TimestampLayout = "2006-01-02 15:04:05"
)

// Slots lists the meal slot choices in form order.
var Slots = []string{SlotSuhoor, SlotIftar, SlotEither}

// RequiredColumns must all be present in a dataset source.
var RequiredColumns = []string{ColumnTitle, ColumnCalories, ColumnProtein, ColumnFat, ColumnSodium}
