// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package database provides the DuckDB-backed property catalog.

The catalog imports a listings CSV (the Inside Airbnb layout: id, name,
latitude, longitude, price, review_scores_rating, neighbourhood_cleansed,
neighbourhood_group_cleansed, property_type) into a single normalized table.
The API uses it to answer two questions: which catalog rows match a set of
listing ids, and which listings lie within a radius of a point.

Normalization happens once at import:
  - every column is read as VARCHAR so mixed-type columns never fail the load
  - price has "$" and "," stripped before casting
  - unparsable numbers become NULL; NULL or non-finite coordinates keep a
    row out of both lookups

Radius search uses the Haversine great-circle distance with an Earth radius
of 6371 km.

Usage:

	cat, err := database.New(&cfg.Catalog)
	if err != nil {
	    return err
	}
	defer cat.Close()

	n, err := cat.LoadListings(ctx, cfg.Catalog.ListingsPath)
	ids, err := cat.FindWithinRadius(ctx, 1.3521, 103.8198, 2.5)
*/
package database
