package snowflake

import (
	"database/sql"
	"fmt"

	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	sf "github.com/snowflakedb/gosnowflake"
)

// NewDB opens a Snowflake connection from a warehouse profile.
func NewDB(profile *config.Profile) (*sql.DB, error) {
	cfg := sf.Config{
		Account:   profile.Account,
		User:      profile.User,
		Password:  profile.Password,
		Database:  profile.Database,
		Schema:    profile.Schema,
		Warehouse: profile.Warehouse,
		Role:      profile.Role,
	}

	dsn, err := sf.DSN(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snowflake connection: %w", err)
	}
	return db, nil
}
