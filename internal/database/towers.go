package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTowerNotFound is returned when a tower lookup fails.
var ErrTowerNotFound = errors.New("tower not found")

// TowerRecord is an archived tower: its generation parameters and the
// exported YAML layout, keyed by the layout fingerprint.
type TowerRecord struct {
	ID          int64
	Fingerprint string
	Seed        int64
	Width       int
	Height      int
	BoxSize     int
	Stories     int
	Edge        float64
	Layout      string // empty in ListTowers results
	CreatedAt   time.Time
}

// RecordTower stores a tower. Recording a fingerprint that is already
// archived is not an error: it returns the existing ID with created false.
func (d *Database) RecordTower(rec TowerRecord) (id int64, created bool, err error) {
	rec.Fingerprint = strings.TrimSpace(rec.Fingerprint)
	if rec.Fingerprint == "" {
		return 0, false, errors.New("tower fingerprint cannot be empty")
	}

	query := d.qb.BuildWithReturning(
		`INSERT INTO towers (fingerprint, seed, width, height, box_size, stories, edge, layout)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"id",
	)
	args := []any{rec.Fingerprint, rec.Seed, rec.Width, rec.Height, rec.BoxSize, rec.Stories, rec.Edge, rec.Layout}

	if d.dialect.SupportsLastInsertID() {
		var result sql.Result
		result, err = d.db.Exec(query, args...)
		if err == nil {
			id, err = result.LastInsertId()
			if err != nil {
				return 0, false, fmt.Errorf("failed to get tower ID: %w", err)
			}
		}
	} else {
		err = d.db.QueryRow(query, args...).Scan(&id)
	}

	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			existing, lookupErr := d.GetTowerByFingerprint(rec.Fingerprint)
			if lookupErr != nil {
				return 0, false, lookupErr
			}
			return existing.ID, false, nil
		}
		return 0, false, fmt.Errorf("failed to record tower: %w", err)
	}

	return id, true, nil
}

const towerColumns = "id, fingerprint, seed, width, height, box_size, stories, edge, layout, created_at"

// GetTower retrieves a tower by ID.
func (d *Database) GetTower(id int64) (*TowerRecord, error) {
	row := d.db.QueryRow(d.qb.Build("SELECT "+towerColumns+" FROM towers WHERE id = ?"), id)
	return scanTower(row)
}

// GetTowerByFingerprint retrieves a tower by its layout fingerprint.
func (d *Database) GetTowerByFingerprint(fingerprint string) (*TowerRecord, error) {
	row := d.db.QueryRow(d.qb.Build("SELECT "+towerColumns+" FROM towers WHERE fingerprint = ?"), fingerprint)
	return scanTower(row)
}

func scanTower(row *sql.Row) (*TowerRecord, error) {
	var rec TowerRecord
	var createdAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.Fingerprint, &rec.Seed, &rec.Width, &rec.Height,
		&rec.BoxSize, &rec.Stories, &rec.Edge, &rec.Layout, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTowerNotFound
		}
		return nil, fmt.Errorf("failed to get tower: %w", err)
	}
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	return &rec, nil
}

// ListTowers returns the most recently archived towers, newest first,
// without their layouts. A limit of zero or less returns all of them.
func (d *Database) ListTowers(limit int) ([]*TowerRecord, error) {
	query := "SELECT id, fingerprint, seed, width, height, box_size, stories, edge, created_at FROM towers ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(d.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list towers: %w", err)
	}
	defer rows.Close()

	var towers []*TowerRecord
	for rows.Next() {
		var rec TowerRecord
		var createdAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Fingerprint, &rec.Seed, &rec.Width, &rec.Height,
			&rec.BoxSize, &rec.Stories, &rec.Edge, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan tower: %w", err)
		}
		if createdAt.Valid {
			rec.CreatedAt = createdAt.Time
		}
		towers = append(towers, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list towers: %w", err)
	}
	return towers, nil
}

// DeleteTower removes a tower by ID.
func (d *Database) DeleteTower(id int64) error {
	result, err := d.db.Exec(d.qb.Build("DELETE FROM towers WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete tower: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return ErrTowerNotFound
	}
	return nil
}

// CountTowers returns the number of archived towers.
func (d *Database) CountTowers() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM towers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count towers: %w", err)
	}
	return count, nil
}
