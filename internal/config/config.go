package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Store struct {
		BaseURL         string `mapstructure:"base_url"`
		TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
		PollingInterval int    `mapstructure:"polling_interval_seconds"`
		SeedFile        string `mapstructure:"seed_file"`
	} `mapstructure:"store"`
	Periods struct {
		MorningStart   int    `mapstructure:"morning_start"`   // minutes since midnight
		AfternoonStart int    `mapstructure:"afternoon_start"` // minutes since midnight
		NightStart     int    `mapstructure:"night_start"`     // minutes since midnight
		FridayMode     string `mapstructure:"friday_mode"`     // "add" or "replace"
	} `mapstructure:"periods"`
	Bell struct {
		CatchupSeconds       int     `mapstructure:"catchup_seconds"`
		RolloverGraceSeconds int     `mapstructure:"rollover_grace_seconds"`
		FadeInMillis         int     `mapstructure:"fade_in_millis"`
		FadeOutMillis        int     `mapstructure:"fade_out_millis"`
		Volume               float64 `mapstructure:"volume"`
		SampleRate           int     `mapstructure:"sample_rate"`
	} `mapstructure:"bell"`
	Assets struct {
		Provider string `mapstructure:"provider"` // "local" or "s3"
		LocalDir string `mapstructure:"local_dir"`
		CacheDir string `mapstructure:"cache_dir"`
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Endpoint string `mapstructure:"endpoint"`
		Region   string `mapstructure:"region"`
		Bucket   string `mapstructure:"bucket"`
		Prefix   string `mapstructure:"prefix"`
	} `mapstructure:"assets"`
	Database struct {
		Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
		Path     string `mapstructure:"path"`   // sqlite file
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
}

func Load() *Config {
	viper.SetEnvPrefix("SINAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("store.base_url")
	viper.BindEnv("store.timeout_seconds")
	viper.BindEnv("store.polling_interval_seconds")
	viper.BindEnv("store.seed_file")

	viper.BindEnv("periods.morning_start")
	viper.BindEnv("periods.afternoon_start")
	viper.BindEnv("periods.night_start")
	viper.BindEnv("periods.friday_mode")

	viper.BindEnv("bell.catchup_seconds")
	viper.BindEnv("bell.rollover_grace_seconds")
	viper.BindEnv("bell.fade_in_millis")
	viper.BindEnv("bell.fade_out_millis")
	viper.BindEnv("bell.volume")
	viper.BindEnv("bell.sample_rate")

	viper.BindEnv("assets.provider")
	viper.BindEnv("assets.local_dir")
	viper.BindEnv("assets.cache_dir")
	viper.BindEnv("assets.key_id")
	viper.BindEnv("assets.app_key")
	viper.BindEnv("assets.endpoint")
	viper.BindEnv("assets.region")
	viper.BindEnv("assets.bucket")
	viper.BindEnv("assets.prefix")

	viper.BindEnv("database.driver")
	viper.BindEnv("database.path")
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")

	// Defaults
	viper.SetDefault("store.base_url", "https://sinal.onrender.com/api")
	viper.SetDefault("store.timeout_seconds", 15)
	viper.SetDefault("store.polling_interval_seconds", 300)

	// Period boundaries (minutes since midnight): 06:00, 12:55, 19:00
	viper.SetDefault("periods.morning_start", 360)
	viper.SetDefault("periods.afternoon_start", 775)
	viper.SetDefault("periods.night_start", 1140)
	viper.SetDefault("periods.friday_mode", "add")

	viper.SetDefault("bell.catchup_seconds", 90)
	viper.SetDefault("bell.rollover_grace_seconds", 5)
	viper.SetDefault("bell.fade_in_millis", 500)
	viper.SetDefault("bell.fade_out_millis", 1000)
	viper.SetDefault("bell.volume", 0.9)
	viper.SetDefault("bell.sample_rate", 44100)

	viper.SetDefault("assets.provider", "local")
	viper.SetDefault("assets.local_dir", "./assets/audio")
	viper.SetDefault("assets.cache_dir", "/tmp/sinal_cache")
	viper.SetDefault("assets.prefix", "audio/")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./sinal.db")
	viper.SetDefault("database.port", "5432")

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "error")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Assets.Provider == "s3" && cfg.Assets.KeyID == "" {
		log.Fatal("Critical: S3 asset provider selected but KeyID is missing (SINAL_ASSETS_KEY_ID)")
	}

	return &cfg
}
