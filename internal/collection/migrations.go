package collection

import "fmt"

// migration holds a single schema migration with its target version.
// The SQL is rendered per dialect so timestamp columns get a native type.
type migration struct {
	version int
	sql     func(d dialect) string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: func(d dialect) string {
			return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS meetings (
	"id"          TEXT PRIMARY KEY,
	"title"       TEXT NOT NULL,
	"description" TEXT,
	"date"        %[1]s NOT NULL,
	"duration"    INTEGER NOT NULL DEFAULT 30,
	"attendees"   TEXT,
	"notes"       TEXT,
	"createdAt"   %[1]s NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todos (
	"id"          TEXT PRIMARY KEY,
	"title"       TEXT NOT NULL,
	"description" TEXT,
	"category"    TEXT NOT NULL DEFAULT 'personal'
		CHECK("category" IN ('personal', 'work', 'health', 'learning', 'other')),
	"priority"    TEXT NOT NULL DEFAULT 'medium'
		CHECK("priority" IN ('low', 'medium', 'high')),
	"status"      TEXT NOT NULL DEFAULT 'pending'
		CHECK("status" IN ('pending', 'in-progress', 'completed')),
	"dueDate"     %[1]s,
	"completedAt" %[1]s,
	"createdAt"   %[1]s NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS learnings (
	"id"          TEXT PRIMARY KEY,
	"title"       TEXT NOT NULL,
	"type"        TEXT NOT NULL DEFAULT 'article'
		CHECK("type" IN ('article', 'book', 'video', 'course', 'podcast', 'other')),
	"source"      TEXT,
	"notes"       TEXT,
	"status"      TEXT NOT NULL DEFAULT 'in-progress'
		CHECK("status" IN ('in-progress', 'completed')),
	"rating"      INTEGER CHECK("rating" BETWEEN 1 AND 5),
	"completedAt" %[1]s,
	"createdAt"   %[1]s NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings("date");
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos("createdAt");
CREATE INDEX IF NOT EXISTS idx_learnings_created_at ON learnings("createdAt");

INSERT INTO schema_version (version) VALUES (1);
`, d.timestamp)
		},
	},
	{
		version: 2,
		sql: func(dialect) string {
			return `
CREATE INDEX IF NOT EXISTS idx_todos_status ON todos("status");
CREATE INDEX IF NOT EXISTS idx_learnings_status ON learnings("status");

INSERT INTO schema_version (version) VALUES (2);
`
		},
	},
}
