package env

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetDuration parses a Go duration ("10s", "1m"), falling back to def on
// missing or malformed values.
func GetDuration(key string, def time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid duration %q for %s, using %s", raw, key, def)
		return def
	}
	return d
}

func SetupEnvFile() {
	// Look for .env file in project root
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/rechargefox to project root
		"../../../.env", // Fallback for deeper nesting
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			return
		}
	}

	// Containers usually inject the environment directly
	Env = map[string]string{}
	log.Print("Warning: no .env file found, using process environment only")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
