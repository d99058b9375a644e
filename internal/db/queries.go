package db

import (
	"database/sql"
	"fmt"
)

// Entry is one morning journal submission. Reflection holds the full
// completion text; Strategy holds the parsed day strategy.
type Entry struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Journal    string `json:"journal"`
	Intention  string `json:"intention"`
	Dream      string `json:"dream,omitempty"`
	Priorities string `json:"priorities"`
	Reflection string `json:"reflection"`
	Strategy   string `json:"strategy"`
	CreatedAt  string `json:"created_at"`
}

const entryColumns = "id, date, journal, intention, COALESCE(dream,''), priorities, reflection, strategy, created_at"

// SaveEntry inserts an entry and returns its ID. Earlier entries for the
// same date are kept; GetEntryByDate returns the newest.
func (d *DB) SaveEntry(e Entry) (int64, error) {
	res, err := d.conn.Exec(
		"INSERT INTO entries (date, journal, intention, dream, priorities, reflection, strategy) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.Date, e.Journal, e.Intention, nullStr(e.Dream), e.Priorities, e.Reflection, e.Strategy,
	)
	if err != nil {
		return 0, fmt.Errorf("saving entry: %w", err)
	}
	return res.LastInsertId()
}

// GetEntryByDate returns the most recent entry for date, or nil if none.
func (d *DB) GetEntryByDate(date string) (*Entry, error) {
	row := d.conn.QueryRow(
		"SELECT "+entryColumns+" FROM entries WHERE date = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		date,
	)
	var e Entry
	err := row.Scan(&e.ID, &e.Date, &e.Journal, &e.Intention, &e.Dream, &e.Priorities, &e.Reflection, &e.Strategy, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry for %s: %w", date, err)
	}
	return &e, nil
}

// ListDates returns every date with at least one entry, newest first.
func (d *DB) ListDates() ([]string, error) {
	rows, err := d.conn.Query("SELECT DISTINCT date FROM entries ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("listing dates: %w", err)
	}
	defer rows.Close()
	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// EntryExists reports whether any entry exists for date.
func (d *DB) EntryExists(date string) (bool, error) {
	var one int
	err := d.conn.QueryRow("SELECT 1 FROM entries WHERE date = ? LIMIT 1", date).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking entry for %s: %w", date, err)
	}
	return true, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
