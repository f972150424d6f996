package config

// DefaultDatabasePath is the default SQLite database location.
const DefaultDatabasePath = "./library.db"
