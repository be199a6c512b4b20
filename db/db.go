// Package db carries the SQL migrations compiled into the binary so
// deployments do not depend on a migrations directory on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
