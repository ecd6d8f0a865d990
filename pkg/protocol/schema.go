package protocol

// SchemaDDL defines the SQLite schema for the ironlung activity log.
// Execute against a SQLite database with: db.Exec(SchemaDDL)
const SchemaDDL = `
-- Operator activity log: calls, emails, demos, card dispositions
CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY,
    activity_type TEXT NOT NULL,
    prospect_id INTEGER,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at);
CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(activity_type);
`
