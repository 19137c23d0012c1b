package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dmerida/papeleo/internal/config"
	"github.com/dmerida/papeleo/internal/rules"
	"github.com/dmerida/papeleo/internal/storage"
)

// databasePath resolves the database location from flags, config or default.
func databasePath() string {
	if path := viper.GetString("database.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultDatabasePath()
}

// rulesPath resolves the rules override file location.
func rulesPath() string {
	if path := viper.GetString("rules.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultRulesPath()
}

// openStorage opens the database and makes sure the schema is current.
func openStorage() (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// loadRules returns the active ruleset: the compiled defaults, merged with
// the override file when it exists.
func loadRules() (rules.Ruleset, error) {
	path := rulesPath()
	if _, err := os.Stat(path); err != nil {
		return rules.Default(), nil
	}
	return rules.Load(path)
}
