package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Storage    StorageConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Upload     UploadConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig configures the OSS bucket used for uploaded study guides.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

// GenerationConfig tunes the question generation pipeline.
type GenerationConfig struct {
	// PromptTextBudget is the maximum number of knowledge-base characters
	// embedded in a single prompt.
	PromptTextBudget int
	// QueueSize bounds the number of jobs waiting for the worker.
	QueueSize int
	// Timeout applies to one LLM call.
	Timeout time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml (current dir or ./config) and applies
// environment variable overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("openai.model", "gpt-5-mini")
	viper.SetDefault("generation.prompt_text_budget", 12000)
	viper.SetDefault("generation.queue_size", 32)
	viper.SetDefault("generation.timeout", 120)
	viper.SetDefault("upload.max_file_size", 50*1024*1024)
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Endpoint:        viper.GetString("storage.endpoint"),
			AccessKeyID:     viper.GetString("storage.access_key_id"),
			AccessKeySecret: viper.GetString("storage.access_key_secret"),
			Bucket:          viper.GetString("storage.bucket"),
			Prefix:          viper.GetString("storage.prefix"),
		},
		OpenAI: OpenAIConfig{
			APIKey: viper.GetString("openai.api_key"),
			Model:  viper.GetString("openai.model"),
		},
		Generation: GenerationConfig{
			PromptTextBudget: viper.GetInt("generation.prompt_text_budget"),
			QueueSize:        viper.GetInt("generation.queue_size"),
			Timeout:          viper.GetDuration("generation.timeout") * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize: viper.GetInt64("upload.max_file_size"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment overrides for deployment without a config file.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.OpenAI.APIKey = openAIKey
	}
	if endpoint := os.Getenv("OSS_ENDPOINT"); endpoint != "" {
		config.Storage.Endpoint = endpoint
	}
	if ak := os.Getenv("OSS_ACCESS_KEY_ID"); ak != "" {
		config.Storage.AccessKeyID = ak
	}
	if sk := os.Getenv("OSS_ACCESS_KEY_SECRET"); sk != "" {
		config.Storage.AccessKeySecret = sk
	}
	if bucket := os.Getenv("OSS_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}

	return config, nil
}

// GetDatabaseURL builds the URL form of the connection string, used by the
// migration tool.
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

// GetDSN builds the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
