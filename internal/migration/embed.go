package migration

import "embed"

// Ordered postgres schema files. Sqlite installs skip these and derive the
// schema from the gorm models.
const migrationsDir = "migrations"

//go:embed migrations/*.up.sql
var schemaFiles embed.FS
