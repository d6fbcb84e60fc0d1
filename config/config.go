package config

import (
	"catalog-service/constant"
	"database/sql"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type Config struct {
	MinIOBucket string        `yaml:"minio_bucket"`
	App         App           `yaml:"app"`
	DB          *sql.DB       `yaml:"db"`
	Queue       *RabbitMQ     `yaml:"rabbitmq"`
	Storage     *minio.Client `yaml:"storage"`
	Server      Server        `yaml:"server"`
	Redis       Redis         `yaml:"redis"`
	JWT         JWT           `yaml:"jwt"`
	Mail        Mail          `yaml:"mail"`
	Stripe      Stripe        `yaml:"stripe"`
	Retention   Retention     `yaml:"retention"`
	CORS        CORS          `yaml:"cors"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
	Workers  int    `yaml:"workers"`
}

type RabbitMQ struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Pass         string `json:"pass"`
	ExchangeName string `json:"exchange_name"`
	Kind         string `json:"kind"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type Mail struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
}

type Stripe struct {
	Secret   string `yaml:"secret"`
	Currency string `yaml:"currency"`
}

// Retention controls compaction of raw progress events. An empty Schedule
// leaves compaction to the CLI.
type Retention struct {
	MaxAge   time.Duration `yaml:"max_age"`
	Schedule string        `yaml:"schedule"`
}

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == constant.EnvironmentProduction.String()
}

func setDefaults() {
	viper.SetDefault("app.environment", "develop")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.workers", 2)
	viper.SetDefault("rabbitmq_kind", "direct")
	viper.SetDefault("minio.url", "localhost:9000")
	viper.SetDefault("minio.bucket", "contents")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("jwt.ttl", time.Hour)
	viper.SetDefault("mail.base_url", "https://api.sendgrid.com")
	viper.SetDefault("stripe.currency", "usd")
	viper.SetDefault("retention.max_age", 90*24*time.Hour)
	viper.SetDefault("cors.allow_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("catalog")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", viper.GetString("postgresql_host"))
	if err != nil {
		return nil, err
	}

	rabbitmq := &RabbitMQ{
		Host: viper.GetString("rabbitmq_host"),
		Port: viper.GetInt("rabbitmq_port"),
		User: viper.GetString("rabbitmq_user"),
		Pass: viper.GetString("rabbitmq_pass"),
		Kind: viper.GetString("rabbitmq_kind"),
	}

	minioClient, err := minio.New(viper.GetString("minio.url"), &minio.Options{
		Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	return &Config{
		MinIOBucket: viper.GetString("minio.bucket"),
		App: App{
			Environment: viper.GetString("app.environment"),
			Host:        viper.GetString("app.host"),
			Protocol:    viper.GetString("app.protocol"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
			Workers:  viper.GetInt("server.workers"),
		},
		Redis: Redis{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWT{
			Secret: viper.GetString("jwt.secret"),
			TTL:    viper.GetDuration("jwt.ttl"),
		},
		Mail: Mail{
			BaseURL: viper.GetString("mail.base_url"),
			APIKey:  viper.GetString("mail.api_key"),
			From:    viper.GetString("mail.from"),
		},
		Stripe: Stripe{
			Secret:   viper.GetString("stripe.secret"),
			Currency: viper.GetString("stripe.currency"),
		},
		Retention: Retention{
			MaxAge:   viper.GetDuration("retention.max_age"),
			Schedule: viper.GetString("retention.schedule"),
		},
		CORS: CORS{
			AllowOrigins: viper.GetStringSlice("cors.allow_origins"),
		},
		DB:      db,
		Queue:   rabbitmq,
		Storage: minioClient,
	}, nil
}
