package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fuentes de datos soportadas para obtener el snapshot de malls.
const (
	DataSourceGraphQL  = "graphql"
	DataSourcePostgres = "postgres"
	DataSourceSQLite   = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Source   SourceConfig
	Keystone KeystoneConfig
	DB       DBConfig
	SQLite   SQLiteConfig
	JWT      JWTConfig
	Admin    AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	LogLevel       string
	Timezone       string // zona usada para asignar cada pago a su mes (IANA, ej. America/Bogota)
	CurrencySymbol string
	PublicURL      string // URL pública de la página; si está, el PDF incluye un QR hacia ella
}

// Location resuelve Timezone; si no es válida devuelve UTC.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SourceConfig selecciona de dónde se leen malls, stores y pagos.
type SourceConfig struct {
	Kind            string // graphql | postgres | sqlite
	FetchTimeout    time.Duration
	RefreshSchedule string // expresión cron; vacío = sin refresco programado
}

// KeystoneConfig acceso a la API GraphQL del admin de Keystone.
type KeystoneConfig struct {
	GraphQLURL    string
	Token         string // se envía como Authorization: Bearer <token>
	SessionCookie string // valor de la cookie keystonejs-session
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
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// SQLiteConfig base SQLite de Keystone (provider "sqlite").
type SQLiteConfig struct {
	Path string
}

// JWTConfig configuración de JWT. Con Secret vacío la API queda sin autenticación.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig credenciales del único usuario administrador del dashboard.
type AdminConfig struct {
	Email        string
	PasswordHash string // hash bcrypt
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_SOURCE, KEYSTONE_GRAPHQL_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "rentas-dashboard"),
			LogLevel:       getString(v, "LOG_LEVEL", "info"),
			Timezone:       getString(v, "APP_TIMEZONE", "UTC"),
			CurrencySymbol: getString(v, "CURRENCY_SYMBOL", "$"),
			PublicURL:      getString(v, "APP_PUBLIC_URL", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Source: SourceConfig{
			Kind:            strings.ToLower(getString(v, "DATA_SOURCE", DataSourceGraphQL)),
			FetchTimeout:    time.Duration(getInt(v, "FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
			RefreshSchedule: getString(v, "REFRESH_SCHEDULE", ""),
		},
		Keystone: KeystoneConfig{
			GraphQLURL:    getString(v, "KEYSTONE_GRAPHQL_URL", "http://localhost:3000/api/graphql"),
			Token:         getString(v, "KEYSTONE_TOKEN", ""),
			SessionCookie: getString(v, "KEYSTONE_SESSION_COOKIE", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "keystone"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		SQLite: SQLiteConfig{
			Path: getString(v, "SQLITE_PATH", "./keystone.db"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "rentas-dashboard"),
		},
		Admin: AdminConfig{
			Email:        getString(v, "ADMIN_EMAIL", "admin@example.com"),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
		},
	}

	switch cfg.Source.Kind {
	case DataSourceGraphQL, DataSourcePostgres, DataSourceSQLite:
	default:
		return nil, fmt.Errorf("config: DATA_SOURCE %q no soportado (graphql|postgres|sqlite)", cfg.Source.Kind)
	}
	if cfg.Source.FetchTimeout <= 0 {
		cfg.Source.FetchTimeout = 15 * time.Second
	}
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("config: APP_TIMEZONE inválida: %w", err)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
