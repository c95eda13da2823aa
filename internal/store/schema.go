package store

const Schema = `
CREATE TABLE IF NOT EXISTS weeks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	week_start TEXT NOT NULL,
	week_end TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS songs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_url TEXT NOT NULL,
	title TEXT,
	artist TEXT,
	album TEXT,
	image_url TEXT,
	added_by TEXT,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	week_id INTEGER,
	added_date DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (week_id) REFERENCES weeks(id)
);

-- One submission per URL per week
CREATE UNIQUE INDEX IF NOT EXISTS idx_songs_week_source ON songs(week_id, source_url);
CREATE INDEX IF NOT EXISTS idx_songs_active ON songs(is_active);

CREATE TABLE IF NOT EXISTS ratings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id INTEGER NOT NULL,
	user_id TEXT NOT NULL,
	rating INTEGER NOT NULL,
	review TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (song_id) REFERENCES songs(id),
	UNIQUE (song_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_ratings_song_id ON ratings(song_id);

CREATE TABLE IF NOT EXISTS rollovers (
	id TEXT PRIMARY KEY,
	week_id INTEGER NOT NULL,
	songs_deactivated INTEGER NOT NULL DEFAULT 0,
	ran_at DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (week_id) REFERENCES weeks(id)
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
