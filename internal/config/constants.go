package config

const (
	// DefaultDatabasePath is the default path for the detections database
	DefaultDatabasePath = "./palindrome.db"

	// sqliteURLPrefix is stripped from DATABASE_URL values such as "sqlite:///./palindrome.db"
	sqliteURLPrefix = "sqlite:///"
)
