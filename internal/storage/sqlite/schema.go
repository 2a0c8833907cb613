package sqlite

// schema is applied on every open; every statement must be idempotent.
// created_at holds fixed-width UTC text (see timestampLayout) so that
// ORDER BY created_at is chronological.
const schema = `
CREATE TABLE IF NOT EXISTS issues (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    location TEXT NOT NULL,
    status TEXT DEFAULT 'open',
    votes INTEGER DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_issues_category ON issues(category);
CREATE INDEX IF NOT EXISTS idx_issues_votes_created ON issues(votes DESC, created_at DESC);
`

// issueColumns is the column list shared by every issue SELECT, in scanIssue order.
const issueColumns = `id, title, category, location, status, votes, created_at`
