package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS monthly_records (
    month                INTEGER PRIMARY KEY,
    actual_profit        TEXT NOT NULL,
    monthly_target       TEXT NOT NULL,
    performance_diff     TEXT NOT NULL,
    deduction            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    year                 INTEGER NOT NULL,
    start_month          INTEGER NOT NULL,
    end_month            INTEGER NOT NULL,
    annual_target        TEXT NOT NULL,
    cumulative_profit    TEXT NOT NULL,
    total_deductions     TEXT NOT NULL,
    months_recorded      INTEGER NOT NULL,
    complete             INTEGER NOT NULL DEFAULT 0,
    eligible             INTEGER,
    total_bonus          TEXT,
    source_file          TEXT NOT NULL,
    exported_at          TEXT NOT NULL
);
`
