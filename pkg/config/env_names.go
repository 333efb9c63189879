package config

// EnvPrefix is the envconfig prefix; individual fields carry fully
// qualified names so this stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ESTATE_DB_DSN"
	EnvDBHost = "ESTATE_DB_HOST"
	EnvDBUser = "ESTATE_DB_USER"
	EnvDBName = "ESTATE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
