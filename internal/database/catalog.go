// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
)

// ErrInvalidRadius is returned for a negative or non-finite search radius.
var ErrInvalidRadius = errors.New("distance must be a finite non-negative number of kilometres")

// LoadListings replaces the catalog contents with the rows of a listings CSV
// and returns the number of rows loaded.
func (c *Catalog) LoadListings(ctx context.Context, path string) (n int, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("load", time.Since(start), err) }()

	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("listings file: %w", err)
	}

	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return 0, fmt.Errorf("clear listings: %w", err)
	}
	res, err := tx.ExecContext(ctx, importListingsSQL(path))
	if err != nil {
		return 0, fmt.Errorf("import listings from %s: %w", path, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	rows, _ := res.RowsAffected()
	n = int(rows)
	metrics.CatalogListings.Set(float64(n))
	logging.Info().Str("path", path).Int("listings", n).Dur("took", time.Since(start)).Msg("Listings catalog loaded")
	return n, nil
}

// GetListings returns the catalog rows for ids that exist and have usable
// coordinates, keyed by id.
func (c *Catalog) GetListings(ctx context.Context, ids []string) (out map[string]models.Listing, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("get_listings", time.Since(start), err) }()

	out = make(map[string]models.Listing, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	//nolint:gosec // only placeholders are interpolated
	query := fmt.Sprintf(`
SELECT id, name, latitude, longitude, price, review_scores_rating, neighbourhood, region, property_type
FROM listings
WHERE id IN (%s) AND %s`, strings.Join(placeholders, ", "), usableCoordinates)

	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		if _, dup := out[l.ID]; !dup {
			out[l.ID] = l
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

// FindWithinRadius returns the ids of listings within km kilometres of
// (lat, lon), in ascending id order.
func (c *Catalog) FindWithinRadius(ctx context.Context, lat, lon, km float64) (ids []string, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("radius", time.Since(start), err) }()

	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return nil, ErrInvalidRadius
	}

	//nolint:gosec // only package constants are interpolated
	query := fmt.Sprintf(`
SELECT DISTINCT id
FROM listings
WHERE %s AND %s <= ?
ORDER BY id`, usableCoordinates, haversineKM)

	rows, err := c.conn.QueryContext(ctx, query, lat, lat, lon, km)
	if err != nil {
		return nil, fmt.Errorf("radius query: %w", err)
	}
	defer rows.Close()

	ids = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan listing id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate radius results: %w", err)
	}
	return ids, nil
}

// Count returns the number of catalog rows.
func (c *Catalog) Count(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("count", time.Since(start), err) }()

	if err := c.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

func scanListing(rows *sql.Rows) (models.Listing, error) {
	var (
		l                      models.Listing
		name, hood, region, pt sql.NullString
		price, rating          sql.NullFloat64
	)
	if err := rows.Scan(&l.ID, &name, &l.Latitude, &l.Longitude, &price, &rating, &hood, &region, &pt); err != nil {
		return l, fmt.Errorf("scan listing: %w", err)
	}
	l.Name = name.String
	l.Price = finiteOrZero(price)
	l.ReviewScoresRating = finiteOrZero(rating)
	l.Neighbourhood = hood.String
	l.Region = region.String
	l.PropertyType = pt.String
	return l, nil
}

func finiteOrZero(v sql.NullFloat64) float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return 0
	}
	return v.Float64
}
