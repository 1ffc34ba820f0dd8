package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv loads the environment-specific .env file into the process
// environment. Known files: .env, .env.development, .env.test, .env.production.
func LoadEnv(env string) error {
	filename := ".env"
	if env != "" {
		filename = fmt.Sprintf(".env.%s", env)
	}
	if _, err := os.Stat(filename); err != nil {
		// fall back to the plain .env
		filename = ".env"
	}
	return godotenv.Load(filename)
}

// GetEnv returns the raw environment value
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetIntEnv returns the environment value coerced to int64, 0 when unset
func GetIntEnv(key string) int64 {
	return cast.ToInt64(os.Getenv(key))
}

// GetBoolEnv returns the environment value coerced to bool, false when unset
func GetBoolEnv(key string) bool {
	return cast.ToBool(os.Getenv(key))
}
