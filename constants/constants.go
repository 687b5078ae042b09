package constants

import (
	"os"
	"path/filepath"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDataDir() string {
	return getEnv("NOTESIFT_DATA_DIR", "./data")
}

func GetHistoryDBPath() string {
	return filepath.Join(GetDataDir(), "history.sqlite")
}

// GetHistoryBackend is "sqlite" unless HISTORY_BACKEND says otherwise.
func GetHistoryBackend() string {
	return getEnv("HISTORY_BACKEND", "sqlite")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoTable() string {
	return getEnv("DYNAMODB_TABLE", "notesift-history")
}

func GetAWSRegion() string {
	return getEnv("AWS_REGION", "localhost")
}

func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetGeminiModel() string {
	return getEnv("GEMINI_MODEL", "gemini-1.5-flash")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

// MaxHistoryItems is how many analyses the history keeps, newest first.
const MaxHistoryItems = 20

// MaxRequestBytes caps the body of a detect request. 10s of Basic Pitch
// output is well under this.
const MaxRequestBytes = 32 * 1024 * 1024
