package storage

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    token      TEXT NOT NULL,
    start_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    device     TEXT NOT NULL,
    config     TEXT
);

CREATE TABLE IF NOT EXISTS detections (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    timestamp  DATETIME NOT NULL,
    frequency  REAL NOT NULL,
    power      REAL NOT NULL,
    snr        REAL NOT NULL,
    protocol   TEXT NOT NULL,
    device_key TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS spectra (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    timestamp  DATETIME NOT NULL,
    frequency  REAL NOT NULL,
    bin_width  REAL NOT NULL,
    power      REAL NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);`

// Indexes are created on Close, after bulk inserts are done.
const initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_detections_session_time ON detections(session_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_spectra_session_time ON spectra(session_id, timestamp);`

const (
	insertSessionSQL = `
INSERT INTO sessions (token, start_time, device, config)
VALUES (?, CURRENT_TIMESTAMP, ?, ?)`

	selectSessionsSQL = `
SELECT id, token, start_time, device, config
FROM sessions
ORDER BY start_time`

	insertDetectionSQL = `
INSERT INTO detections (session_id, timestamp, frequency, power, snr, protocol, device_key)
VALUES `

	insertSpectrumSQL = `
INSERT INTO spectra (session_id, timestamp, frequency, bin_width, power)
VALUES `

	selectSpectraSQL = `
SELECT timestamp, frequency, bin_width, power
FROM spectra
WHERE session_id = ?
ORDER BY timestamp, frequency`
)
