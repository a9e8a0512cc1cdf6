package migrations

import "embed"

// PostgresFS embeds the plan and snapshot table migrations.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the flattened day-row table migrations.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
