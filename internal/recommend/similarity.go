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
	"math"
	"os"
	"strconv"
	"strings"
)

// SimilarityMatrix holds pairwise similarity scores between listings.
//
// Rows and columns are keyed by listing id and need not cover the same set:
// a listing is a valid interaction source when it is a row and a candidate
// when it is a column. Symmetry is not checked. The matrix is read-only once
// built and safe for concurrent use.
type SimilarityMatrix struct {
	columns     []string
	columnIndex map[string]int
	rowIndex    map[string]int
	values      []float64 // row-major, len(rowIndex)*len(columns)
}

// NewSimilarityMatrix builds a matrix from explicit rows. values[i] holds the
// scores of rowIDs[i] against every column, in column order.
func NewSimilarityMatrix(rowIDs, columnIDs []string, values [][]float64) (*SimilarityMatrix, error) {
	if len(rowIDs) != len(values) {
		return nil, fmt.Errorf("%d row ids for %d rows: %w", len(rowIDs), len(values), ErrRaggedRow)
	}

	m, err := newMatrix(columnIDs, len(rowIDs))
	if err != nil {
		return nil, err
	}
	for i, id := range rowIDs {
		if err := m.appendRow(id, values[i]); err != nil {
			return nil, err
		}
	}
	if len(m.rowIndex) == 0 {
		return nil, ErrEmptyMatrix
	}
	return m, nil
}

// LoadSimilarityMatrix reads a matrix CSV from disk. See ParseSimilarityMatrix
// for the format.
func LoadSimilarityMatrix(ctx context.Context, path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from service configuration
	if err != nil {
		return nil, fmt.Errorf("open similarity matrix: %w", err)
	}
	defer f.Close()

	m, err := ParseSimilarityMatrix(ctx, bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("parse similarity matrix %s: %w", path, err)
	}
	return m, nil
}

// ParseSimilarityMatrix reads a square-ish CSV matrix.
//
// The header is an index label (ignored) followed by the column listing ids.
// Each data row is a row listing id followed by one value per column. Blank,
// unparsable and non-finite values read as 0.
func ParseSimilarityMatrix(ctx context.Context, r io.Reader) (*SimilarityMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyMatrix
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, ErrEmptyMatrix
	}

	columnIDs := make([]string, len(header)-1)
	for i, id := range header[1:] {
		columnIDs[i] = strings.TrimSpace(id)
	}

	m, err := newMatrix(columnIDs, 0)
	if err != nil {
		return nil, err
	}

	row := make([]float64, len(columnIDs))
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != len(columnIDs)+1 {
			return nil, fmt.Errorf("line %d has %d values, want %d: %w",
				line, len(record)-1, len(columnIDs), ErrRaggedRow)
		}

		for j, cell := range record[1:] {
			row[j] = parseScore(cell)
		}
		if err := m.appendRow(strings.TrimSpace(record[0]), row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if len(m.rowIndex) == 0 {
		return nil, ErrEmptyMatrix
	}
	return m, nil
}

func newMatrix(columnIDs []string, rowHint int) (*SimilarityMatrix, error) {
	if len(columnIDs) == 0 {
		return nil, ErrEmptyMatrix
	}

	m := &SimilarityMatrix{
		columns:     append([]string(nil), columnIDs...),
		columnIndex: make(map[string]int, len(columnIDs)),
		rowIndex:    make(map[string]int, rowHint),
		values:      make([]float64, 0, rowHint*len(columnIDs)),
	}
	for j, id := range m.columns {
		if _, dup := m.columnIndex[id]; dup {
			return nil, fmt.Errorf("column %q: %w", id, ErrDuplicateListing)
		}
		m.columnIndex[id] = j
	}
	return m, nil
}

func (m *SimilarityMatrix) appendRow(id string, values []float64) error {
	if len(values) != len(m.columns) {
		return fmt.Errorf("row %q has %d values, want %d: %w", id, len(values), len(m.columns), ErrRaggedRow)
	}
	if _, dup := m.rowIndex[id]; dup {
		return fmt.Errorf("row %q: %w", id, ErrDuplicateListing)
	}
	m.rowIndex[id] = len(m.rowIndex)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		m.values = append(m.values, v)
	}
	return nil
}

func parseScore(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Columns returns the candidate listing ids in file order. The slice must
// not be modified.
func (m *SimilarityMatrix) Columns() []string {
	return m.columns
}

// NumRows returns the number of listings usable as interaction sources.
func (m *SimilarityMatrix) NumRows() int {
	return len(m.rowIndex)
}

// NumColumns returns the number of candidate listings.
func (m *SimilarityMatrix) NumColumns() int {
	return len(m.columns)
}

// HasRow reports whether id can be used as an interaction source.
func (m *SimilarityMatrix) HasRow(id string) bool {
	_, ok := m.rowIndex[id]
	return ok
}

// Row returns the scores of id against every column. The slice must not be
// modified.
func (m *SimilarityMatrix) Row(id string) ([]float64, bool) {
	i, ok := m.rowIndex[id]
	if !ok {
		return nil, false
	}
	n := len(m.columns)
	return m.values[i*n : (i+1)*n], true
}

// Similarity returns sim(a, b) where a is a row and b a column.
func (m *SimilarityMatrix) Similarity(a, b string) (float64, bool) {
	row, ok := m.Row(a)
	if !ok {
		return 0, false
	}
	j, ok := m.columnIndex[b]
	if !ok {
		return 0, false
	}
	return row[j], true
}
