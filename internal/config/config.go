package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	// KPI_TIMEZONE precisa resolver nomes IANA mesmo sem zoneinfo no host
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Subgraph     Subgraph     `mapstructure:",squash"`
	ENS          ENS          `mapstructure:",squash"`
	KPI          KPI          `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Subgraph struct {
	HTTPURL   string        `mapstructure:"subgraph_http"`
	WSURL     string        `mapstructure:"subgraph_ws"`
	Reconnect bool          `mapstructure:"subgraph_ws_reconnect"`
	Timeout   time.Duration `mapstructure:"subgraph_timeout"`
}

type ENS struct {
	URL string `mapstructure:"ens_url"`
}

type KPI struct {
	MinYear   int    `mapstructure:"kpi_min_year"`
	Timezone  string `mapstructure:"kpi_timezone"`
	AUMScale  int32  `mapstructure:"kpi_aum_scale"`
	AUMDigits int32  `mapstructure:"kpi_aum_fraction_digits"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"redis_ttl"`
}

type Auth struct {
	Secret               string        `mapstructure:"auth_secret"`
	OperatorEmail        string        `mapstructure:"auth_operator_email"`
	OperatorPasswordHash string        `mapstructure:"auth_operator_password_hash"`
	TokenTTL             time.Duration `mapstructure:"auth_token_ttl"`
}

type SnapshotSync struct {
	CronSchedule string `mapstructure:"snapshot_sync_cron"`
	YearLookBack int    `mapstructure:"snapshot_sync_year_lookback"`
	Enabled      bool   `mapstructure:"snapshot_sync_enabled"`
	// RetentionYears remove snapshots mais antigos que N anos; 0 desabilita
	RetentionYears int `mapstructure:"snapshot_retention_years"`
}

// Location retorna o fuso usado para calcular o início dos meses
func (k KPI) Location() (*time.Location, error) {
	if k.Timezone == "" || k.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(k.Timezone)
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/fund_kpi?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	// o job de snapshots grava no máximo 3 quantidades em paralelo
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SUBGRAPH_HTTP", "http://localhost:8000/subgraphs/name/melonproject/melon")
	viper.SetDefault("SUBGRAPH_WS", "")
	viper.SetDefault("SUBGRAPH_WS_RECONNECT", true)
	viper.SetDefault("SUBGRAPH_TIMEOUT", "30s")

	viper.SetDefault("ENS_URL", "https://ens.melon.network/")

	viper.SetDefault("KPI_MIN_YEAR", 2019)
	viper.SetDefault("KPI_TIMEZONE", "Local")
	viper.SetDefault("KPI_AUM_SCALE", 18)
	viper.SetDefault("KPI_AUM_FRACTION_DIGITS", 6)

	viper.SetDefault("REDIS_ADDR", "") // vazio desabilita o cache
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TTL", "1m")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATOR_EMAIL", "")
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	// Defaults para sincronização de snapshots
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 5 1 * *") // No primeiro dia de cada mês às 5h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_YEAR_LOOKBACK", 1)  // 1 ano anterior além do atual
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)
	viper.SetDefault("SNAPSHOT_RETENTION_YEARS", 0)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(time.Now()); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate(now time.Time) error {
	var errs []error

	if c.KPI.AUMScale < 0 {
		errs = append(errs, fmt.Errorf("KPI_AUM_SCALE deve ser >= 0, recebido %d", c.KPI.AUMScale))
	}
	if c.KPI.AUMDigits < 0 {
		errs = append(errs, fmt.Errorf("KPI_AUM_FRACTION_DIGITS deve ser >= 0, recebido %d", c.KPI.AUMDigits))
	}
	if c.KPI.MinYear > now.Year() {
		errs = append(errs, fmt.Errorf("KPI_MIN_YEAR (%d) posterior ao ano atual (%d)", c.KPI.MinYear, now.Year()))
	}
	if _, err := c.KPI.Location(); err != nil {
		errs = append(errs, fmt.Errorf("KPI_TIMEZONE inválido: %w", err))
	}
	if c.Subgraph.HTTPURL == "" {
		errs = append(errs, errors.New("SUBGRAPH_HTTP é obrigatório"))
	}

	return errors.Join(errs...)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
