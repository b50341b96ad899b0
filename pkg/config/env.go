package config

const (
	EnvPrefix = "LISTYGO"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "LISTYGO_DB_DSN"
	EnvDBHost = "LISTYGO_DB_HOST"
	EnvDBUser = "LISTYGO_DB_USER"
	EnvDBName = "LISTYGO_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
