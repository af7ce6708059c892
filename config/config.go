package config

import (
	"os"
)

// Config 应用配置
type Config struct {
	Port         string
	GatewayURL   string
	GatewayKey   string
	GatewayModel string
	FirecrawlKey string
	GithubToken  string
	DatabaseURL  string
}

// Load 从环境变量加载配置
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		GatewayURL:   getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		GatewayKey:   getEnv("AI_GATEWAY_API_KEY", ""),
		GatewayModel: getEnv("AI_GATEWAY_MODEL", "google/gemini-2.5-flash"),
		FirecrawlKey: getEnv("FIRECRAWL_API_KEY", ""),
		GithubToken:  getEnv("GITHUB_TOKEN", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
