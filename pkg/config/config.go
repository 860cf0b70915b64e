package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	RefData RefDataConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// Configured indica si hay datos suficientes para conectar.
func (c DBConfig) Configured() bool {
	return c.DatabaseURL != "" || (c.Host != "" && c.DBName != "")
}

// ConnectionString devuelve DATABASE_URL si está definido, si no el DSN construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
	TimeoutSecs int
	DocsFile    string // swagger.json servido en /docs; vacío lo desactiva
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Orígenes de las tablas de referencia.
const (
	RefDataFile     = "file"
	RefDataPostgres = "postgres"
)

// RefDataConfig de dónde se cargan barcos, armadores, productos, lonjas y tarifas.
type RefDataConfig struct {
	Source string // file | postgres
	Path   string // YAML cuando Source es file
}

// ExportConfig valores por defecto de la exportación A3ERP.
type ExportConfig struct {
	CABSERIE      string
	StartSequence int
}

// Load lee la configuración desde variables de entorno y, si existen, .env o config.env.
// Las variables de entorno tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "lonjas-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "lonjas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			MinConns:    getInt(v, "DB_MIN_CONNS", 1),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "lonjas-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 8),
			TimeoutSecs: getInt(v, "HTTP_TIMEOUT_SECONDS", 30),
			DocsFile:    getString(v, "HTTP_DOCS_FILE", "./docs/swagger.json"),
		},
		RefData: RefDataConfig{
			Source: strings.ToLower(getString(v, "REFDATA_SOURCE", RefDataFile)),
			Path:   getString(v, "REFDATA_PATH", "refdata.yaml"),
		},
		Export: ExportConfig{
			CABSERIE:      getString(v, "EXPORT_CABSERIE", "L"),
			StartSequence: getInt(v, "EXPORT_START_SEQUENCE", 1),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.RefData.Source {
	case RefDataFile:
		if c.RefData.Path == "" {
			return fmt.Errorf("config: REFDATA_PATH requerido con REFDATA_SOURCE=file")
		}
	case RefDataPostgres:
		if !c.DB.Configured() {
			return fmt.Errorf("config: REFDATA_SOURCE=postgres requiere DATABASE_URL o DB_HOST")
		}
	default:
		return fmt.Errorf("config: REFDATA_SOURCE %q no soportado (file|postgres)", c.RefData.Source)
	}
	if c.DB.MaxConns < 1 || c.DB.MinConns < 0 || c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS (%d) y DB_MAX_CONNS (%d) fuera de rango", c.DB.MinConns, c.DB.MaxConns)
	}
	if c.Export.StartSequence < 1 {
		return fmt.Errorf("config: EXPORT_START_SEQUENCE debe ser >= 1")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
