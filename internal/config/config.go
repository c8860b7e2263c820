package config

import (
	"os"
)

type Config struct {
	ServerPort   string
	StoreBackend string // memory | local | file | jsonbin | postgres | redis
	DataFile     string
	ProfileFile  string
	JSONBinURL   string
	JSONBinKey   string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	RedisURL     string
	RedisKey     string
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "3000"),
		StoreBackend: getEnv("STORE_BACKEND", "file"),
		DataFile:     getEnv("DATA_FILE", "data.json"),
		ProfileFile:  getEnv("PROFILE_FILE", "profile.json"),
		JSONBinURL:   getEnv("JSONBIN_URL", "https://api.jsonbin.io/v3"),
		JSONBinKey:   getEnv("JSONBIN_API_KEY", ""),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "chatbin"),
		DBPassword:   getEnv("DB_PASSWORD", "chatbin_dev_password"),
		DBName:       getEnv("DB_NAME", "chatbin"),
		RedisURL:     getEnv("REDIS_URL", "localhost:6379"),
		RedisKey:     getEnv("REDIS_KEY", "chatbin:document"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
