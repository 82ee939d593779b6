// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sales (
	sale_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	currency TEXT NOT NULL,
	volume REAL NOT NULL,
	proceeds REAL NOT NULL,
	cost_basis REAL NOT NULL,
	gain REAL NOT NULL,
	long_term INTEGER NOT NULL,
	buy_trade INTEGER NOT NULL,
	sell_trade INTEGER NOT NULL,
	buy_time DATETIME NOT NULL,
	sell_time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS lots (
	run_id TEXT NOT NULL,
	currency TEXT NOT NULL,
	seq INTEGER NOT NULL,
	volume REAL NOT NULL,
	cost_basis REAL NOT NULL,
	trade INTEGER NOT NULL,
	acquired_at DATETIME NOT NULL,
	PRIMARY KEY (run_id, currency, seq)
);

CREATE INDEX IF NOT EXISTS idx_sales_sell_time ON sales(sell_time);
CREATE INDEX IF NOT EXISTS idx_sales_run ON sales(run_id);
`
