package authmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the auth module migrations.
var Migrations = migrate.NewMigrations()
