package structs

type EnviromentModel struct {
	Database Database
	Dataset  Dataset
	Audit    Audit
	Sheets   Sheets
	XLSX     XLSX
	RabbitMQ RabbitMQ
	Log      Log
	Server   Server
	Router   Router
}

type Server struct {
	AppAPI   string
	Timezone string
}

type Database struct {
	Client      string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	LogEnable   int
}

type Dataset struct {
	Path     string
	Sheet    string
	SyncToDB int
}

// Audit selects where request rows are appended.
type Audit struct {
	Driver    string
	Worksheet string
}

type Sheets struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
}

type XLSX struct {
	Path string
}

type RabbitMQ struct {
	Enable int
	Domain string
	Queue  string
}

type Log struct {
	Dir            string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type Router struct {
	Port int
}
