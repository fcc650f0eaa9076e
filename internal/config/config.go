package config

import "os"

type Config struct {
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	HTTPPort       string
	ScoringMapPath string
}

func Load() *Config {
	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "aiready"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:       getEnv("PORT", "8080"),
		ScoringMapPath: getEnv("SCORING_MAP_PATH", "data/scoring_map.json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
