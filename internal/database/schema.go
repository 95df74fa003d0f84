// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package database

import (
	"context"
	"fmt"
	"strings"
)

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id VARCHAR NOT NULL,
	name VARCHAR,
	latitude DOUBLE,
	longitude DOUBLE,
	price DOUBLE,
	review_scores_rating DOUBLE,
	neighbourhood VARCHAR,
	region VARCHAR,
	property_type VARCHAR
)`

func (c *Catalog) createSchema(ctx context.Context) error {
	if _, err := c.conn.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

// importListingsSQL builds the statement that copies a listings CSV into
// the table. The path is embedded as a quoted literal.
func importListingsSQL(path string) string {
	return fmt.Sprintf(`
INSERT INTO listings
SELECT
	TRIM(id),
	COALESCE(name, ''),
	TRY_CAST(TRIM(latitude) AS DOUBLE),
	TRY_CAST(TRIM(longitude) AS DOUBLE),
	TRY_CAST(REPLACE(REPLACE(TRIM(price), '$', ''), ',', '') AS DOUBLE),
	TRY_CAST(TRIM(review_scores_rating) AS DOUBLE),
	COALESCE(neighbourhood_cleansed, ''),
	COALESCE(neighbourhood_group_cleansed, ''),
	COALESCE(property_type, '')
FROM read_csv_auto(%s, header = true, all_varchar = true)
WHERE id IS NOT NULL AND TRIM(id) <> ''`, quoteLiteral(path))
}

// usableCoordinates restricts a query to rows that can be placed on a map.
const usableCoordinates = `latitude IS NOT NULL AND longitude IS NOT NULL
	AND isfinite(latitude) AND isfinite(longitude)`

// haversineKM is the great-circle distance in kilometres from the row's
// coordinates to the point bound by the three placeholders (lat, lat, lon).
var haversineKM = fmt.Sprintf(`2 * %.1f * asin(least(1.0, sqrt(
	pow(sin(radians(latitude - ?) / 2), 2) +
	cos(radians(?)) * cos(radians(latitude)) * pow(sin(radians(longitude - ?) / 2), 2)
)))`, EarthRadiusKM)

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
