package migrations

import "github.com/Faizan-Faisal/umt-hackathon/internal/database/schema"

var CreateAuthEventsTable = schema.Migration{
	Version:     1,
	Description: "Create auth_events table",
	Up: `
		CREATE TABLE IF NOT EXISTS auth_events (
			id UUID,
			event_type String,
			origin String,
			actor String,
			role String,
			subject String,
			occurred_at DateTime,
			payload String,
			PRIMARY KEY (id)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(occurred_at)
		ORDER BY (id, occurred_at)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS auth_events`,
}

// All lists every migration in apply order.
var All = []schema.Migration{
	CreateAuthEventsTable,
}
