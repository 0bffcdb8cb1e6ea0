package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRegistry(t *testing.T) {
	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.ini"))
		require.Error(t, err)
	})

	t.Run("loads profiles", func(t *testing.T) {
		path := writeProfiles(t, `
[default]
account = myorg-myaccount
user = analyst
password = secret
database = FINANCE__ECONOMICS
schema = CYBERSYN
warehouse = COMPUTE_WH

[lakehouse]
host = https://adb-123.azuredatabricks.net
token = dapi123
http_path = /sql/1.0/warehouses/abc
`)
		registry, err := NewRegistry(path)
		require.NoError(t, err)

		profiles, err := registry.GetProfiles(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"default", "lakehouse"}, profiles)
	})
}

func TestGetProfile(t *testing.T) {
	path := writeProfiles(t, `
[default]
account = myorg-myaccount
user = analyst
password = secret
database = FINANCE__ECONOMICS

[lakehouse]
host = https://adb-123.azuredatabricks.net
token = dapi123
http_path = /sql/1.0/warehouses/abc
`)
	registry, err := NewRegistry(path)
	require.NoError(t, err)

	t.Run("snowflake style profile", func(t *testing.T) {
		profile, err := registry.GetProfile(context.Background(), "default")
		require.NoError(t, err)

		assert.Equal(t, "default", profile.Name)
		assert.Equal(t, "myorg-myaccount", profile.Account)
		assert.Equal(t, "analyst", profile.User)
		assert.Equal(t, "FINANCE__ECONOMICS", profile.Database)
		assert.Empty(t, profile.Token)
	})

	t.Run("databricks style profile", func(t *testing.T) {
		profile, err := registry.GetProfile(context.Background(), "lakehouse")
		require.NoError(t, err)

		assert.Equal(t, "dapi123", profile.Token)
		assert.Equal(t, "/sql/1.0/warehouses/abc", profile.HTTPPath)
		assert.Empty(t, profile.Account)
	})

	t.Run("unknown profile fails", func(t *testing.T) {
		_, err := registry.GetProfile(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
