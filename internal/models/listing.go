// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package models

// Listing is one row of the property catalog.
//
// Numeric fields that could not be parsed are zero. Neighbourhood and Region
// come from the neighbourhood_cleansed and neighbourhood_group_cleansed
// columns.
type Listing struct {
	ID                 string  `json:"listing_id"`
	Name               string  `json:"name"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Price              float64 `json:"price"`
	ReviewScoresRating float64 `json:"review_scores_rating"`
	Neighbourhood      string  `json:"neighbourhood"`
	Region             string  `json:"region"`
	PropertyType       string  `json:"property_type"`
}

// MapRecommendation is a scored listing with the catalog fields a map view
// needs.
type MapRecommendation struct {
	Listing
	RecommendScore float64 `json:"recommend_score"`
	Seen           bool    `json:"seen"`
}

// MapResult is the payload of the map-enriched recommendation endpoint.
//
// Missing lists recommended ids with no usable catalog row, in
// recommendation order.
type MapResult struct {
	UserID          string              `json:"user_id"`
	Count           int                 `json:"count"`
	Missing         []string            `json:"missing"`
	Recommendations []MapRecommendation `json:"recommendations"`
	Message         string              `json:"message,omitempty"`
}

// Location is a radius search: listings within Distance kilometres of the
// point.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Distance  float64 `json:"distance" validate:"gt=0"`
}
