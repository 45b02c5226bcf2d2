package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg := FromLookup(lookupFrom(nil))

	assert.Equal(t, "5001", cfg.ServerPort)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite3", cfg.DBDialect)
	assert.Equal(t, "file:data/whatsapp.db?_foreign_keys=on", cfg.DBAddress)
	assert.Equal(t, "Linux", cfg.OSName)
	assert.False(t, cfg.QRTerminal)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{
		"PORT":          "8080",
		"APP_ENV":       "Development",
		"DATA_DIR":      "/var/lib/wa",
		"WA_DB_DIALECT": "sqlite",
		"QR_TERMINAL":   "true",
	}))

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "file:/var/lib/wa/whatsapp.db?_pragma=foreign_keys(1)", cfg.DBAddress)
	assert.True(t, cfg.QRTerminal)
}

func TestFromLookup_BlankValuesUseDefaults(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{
		"PORT":        "  ",
		"QR_TERMINAL": "maybe",
	}))

	assert.Equal(t, "5001", cfg.ServerPort)
	assert.False(t, cfg.QRTerminal)
}

func TestFromLookup_ExplicitDBAddress(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{
		"WA_DB_DIALECT": "postgres",
		"WA_DB_ADDRESS": "postgres://wa:wa@localhost/wa?sslmode=disable",
	}))

	assert.Equal(t, "postgres", cfg.DBDialect)
	assert.Equal(t, "postgres://wa:wa@localhost/wa?sslmode=disable", cfg.DBAddress)
}
