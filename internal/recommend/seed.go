// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// SeedColumnUserID names the user column of an interaction seed file. The
// other required columns share the interaction field names.
const SeedColumnUserID = "user_id"

// SeedFromFile replays an interaction CSV into the store, one replace per
// user. A missing file is not an error. It returns the number of users seeded.
func (e *Engine) SeedFromFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from service configuration
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Info().Str("path", path).Msg("no interaction seed file, starting empty")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open interaction seed: %w", err)
	}
	defer f.Close()

	users, err := e.Seed(ctx, bufio.NewReader(f))
	if err != nil {
		return users, fmt.Errorf("seed interactions from %s: %w", path, err)
	}
	return users, nil
}

// Seed replays interaction rows from r. The header must name user_id,
// listing_id, like and views in any order; other columns are ignored.
func (e *Engine) Seed(ctx context.Context, r io.Reader) (int, error) {
	grouped, order, err := readSeed(r)
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, userID := range order {
		if err := ctx.Err(); err != nil {
			return seeded, err
		}
		records, _, err := NormalizeInteractions(userID, grouped[userID])
		if err != nil {
			e.logger.Warn().Err(err).Str("user_id", userID).Msg("skipping invalid seed interactions")
			continue
		}
		if err := e.ReplaceInteractions(ctx, userID, records); err != nil {
			return seeded, err
		}
		seeded++
	}

	e.logger.Info().Int("users", seeded).Msg("interaction seed loaded")
	return seeded, nil
}

func readSeed(r io.Reader) (map[string][]RawInteraction, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return map[string][]RawInteraction{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	columns := [...]string{SeedColumnUserID, FieldListingID, FieldLike, FieldViews}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("seed header missing %q column", name)
		}
	}

	grouped := make(map[string][]RawInteraction)
	var order []string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read line %d: %w", line, err)
		}

		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		userID := cell(SeedColumnUserID)
		if userID == "" {
			continue
		}
		if _, ok := grouped[userID]; !ok {
			order = append(order, userID)
		}
		grouped[userID] = append(grouped[userID], RawInteraction{
			FieldListingID: cell(FieldListingID),
			FieldLike:      cell(FieldLike),
			FieldViews:     cell(FieldViews),
		})
	}
	return grouped, order, nil
}
