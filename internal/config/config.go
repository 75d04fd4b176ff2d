package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	// AppID namespaces the four collections under
	// artifacts/{AppID}/public/data, matching the documents already written
	// by earlier versions of the system.
	AppID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("%s: missing FIRESTORE_PROJECT_ID", op)
	}

	appID := os.Getenv("LIGHTWAVE_APP_ID")
	if appID == "" {
		appID = "lightwave-erp-v8"
	}

	firestoreCfg := FirestoreConfig{
		ProjectID:       projectID,
		CredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		AppID:           appID,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	return &Config{
		Server:    serverCfg,
		Firestore: firestoreCfg,
		Redis:     redisCfg,
	}, nil
}
