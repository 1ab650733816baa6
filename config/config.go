package config

import (
	"os"
)

// Config carries every tunable the service needs. It is built once in main
// and passed down to each component; nothing reads the environment after startup.
type Config struct {
	// Remote content repository (GitHub contents API).
	GitHubToken string
	RepoOwner   string
	RepoName    string
	Branch      string

	// Document paths inside the repository.
	ProductsPath string
	ClicksPath   string
	WisdomPath   string

	// Admin access. AdminSecretHash, when set, takes precedence over the
	// plain AdminSecret and is expected to be a bcrypt hash.
	AdminSecret     string
	AdminSecretHash string
	JWTSecret       string

	// Generative content service (OpenAI-compatible).
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	FrontendOrigin string
	Port           string
}

func Load() *Config {
	return &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		RepoOwner:   getEnv("REPO_OWNER", "IYAOAA"),
		RepoName:    getEnv("REPO_NAME", "1000HomeVibes"),
		Branch:      getEnv("BRANCH", "main"),

		ProductsPath: getEnv("PRODUCTS_PATH", "data/products.json"),
		ClicksPath:   getEnv("CLICKS_PATH", "data/clicks.json"),
		WisdomPath:   getEnv("WISDOM_PATH", "data/product-wisdom.json"),

		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),

		FrontendOrigin: os.Getenv("FE_ORIGIN"),
		Port:           getEnv("PORT", "3000"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
