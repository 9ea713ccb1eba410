package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPprint(t *testing.T) {
	require.NotPanics(t, func() {
		Pprint(map[string]any{
			"ticker":    "INFY.NS",
			"fairValue": 1620.55,
		})
	})
}

func TestLoadSecrets(t *testing.T) {
	chdir := func(t *testing.T, dir string) {
		t.Helper()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { os.Chdir(cwd) })
	}

	t.Run("missing file yields defaults", func(t *testing.T) {
		chdir(t, t.TempDir())

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "", secrets.Db.Host)
		require.Equal(t, "", secrets.FundamentalsBaseUrl)
		require.Empty(t, secrets.CurrencyConversion)
	})

	t.Run("test env reads secrets-test.json", func(t *testing.T) {
		dir := t.TempDir()
		contents := `{
			"db": {"host": "localhost", "port": "5438", "user": "postgres", "password": "postgres", "database": "fairval"},
			"fundamentalsBaseUrl": "http://localhost:9990",
			"currencyConversion": {"USD": 2.0}
		}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets-test.json"), []byte(contents), 0644))
		chdir(t, dir)
		t.Setenv("FAIRVAL_ENV", "test")

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "localhost", secrets.Db.Host)
		require.Equal(t, "http://localhost:9990", secrets.FundamentalsBaseUrl)
		require.Equal(t, 2.0, secrets.CurrencyConversion["USD"])
	})

	t.Run("connection string respects ssl flag", func(t *testing.T) {
		db := DbSecrets{Host: "localhost", Port: "5432", User: "u", Password: "p", Database: "fairval"}
		require.Contains(t, db.ToConnectionStr(), "sslmode=disable")

		db.EnableSsl = true
		require.NotContains(t, db.ToConnectionStr(), "sslmode=disable")
	})
}
