package store

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL DEFAULT '',
    source_label TEXT NOT NULL DEFAULT '',
    source_kind  TEXT NOT NULL,
    url          TEXT NOT NULL DEFAULT '',
    timestamp    DATETIME NOT NULL,
    views        INTEGER NOT NULL DEFAULT 0,
    likes        INTEGER NOT NULL DEFAULT 0,
    shares       INTEGER NOT NULL DEFAULT 0,
    comments     INTEGER NOT NULL DEFAULT 0,
    reposts      INTEGER NOT NULL DEFAULT 0,
    recency      REAL NOT NULL DEFAULT 0,
    popularity   REAL NOT NULL DEFAULT 0,
    engagement   REAL NOT NULL DEFAULT 0,
    overall      REAL NOT NULL DEFAULT 0,
    tags         TEXT NOT NULL DEFAULT '[]',
    category     TEXT NOT NULL DEFAULT 'general',
    collected_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidates_kind ON candidates(source_kind);
CREATE INDEX IF NOT EXISTS idx_candidates_timestamp ON candidates(timestamp);
CREATE INDEX IF NOT EXISTS idx_candidates_overall ON candidates(overall);
CREATE INDEX IF NOT EXISTS idx_candidates_collected ON candidates(collected_at);

CREATE TABLE IF NOT EXISTS rankings (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    ran_at        DATETIME NOT NULL,
    candidate_ids TEXT NOT NULL DEFAULT '[]',
    max_results   INTEGER NOT NULL DEFAULT 0,
    min_score     REAL NOT NULL DEFAULT 0,
    time_window   REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_rankings_ran_at ON rankings(ran_at);
`
