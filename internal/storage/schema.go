// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the weather table with one row per normalized date.
package storage

// initSchema creates or updates the database schema.
// A second row for an existing date replaces the first.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS weather (
		_id INTEGER PRIMARY KEY AUTOINCREMENT,
		date INTEGER NOT NULL,
		conditionId INTEGER NOT NULL,
		maxTemp REAL NOT NULL,
		minTemp REAL NOT NULL,
		humidity REAL NOT NULL,
		pressure REAL NOT NULL,
		windSpeed REAL NOT NULL,
		degrees REAL NOT NULL,
		UNIQUE (date) ON CONFLICT REPLACE
	);

	CREATE INDEX IF NOT EXISTS idx_weather_date ON weather(date);
	`

	_, err := d.db.Exec(schema)
	return err
}
