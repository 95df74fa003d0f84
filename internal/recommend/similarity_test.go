// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMatrixCSV = `,101,102,103
101,1.0,0.75,0.1
102,0.75,1.0,
103,0.1,NaN,1.0
`

func TestParseSimilarityMatrix(t *testing.T) {
	m, err := ParseSimilarityMatrix(context.Background(), strings.NewReader(sampleMatrixCSV))
	if err != nil {
		t.Fatalf("ParseSimilarityMatrix() error = %v", err)
	}

	if m.NumRows() != 3 || m.NumColumns() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", m.NumRows(), m.NumColumns())
	}
	if !equalStrings(m.Columns(), []string{"101", "102", "103"}) {
		t.Errorf("Columns() = %v", m.Columns())
	}

	tests := []struct {
		a, b string
		want float64
	}{
		{"101", "102", 0.75},
		{"101", "103", 0.1},
		{"102", "103", 0}, // blank cell
		{"103", "102", 0}, // NaN cell
		{"103", "103", 1.0},
	}
	for _, tt := range tests {
		got, ok := m.Similarity(tt.a, tt.b)
		if !ok {
			t.Errorf("Similarity(%s, %s) not found", tt.a, tt.b)
			continue
		}
		if !approxEqual(got, tt.want) {
			t.Errorf("Similarity(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if _, ok := m.Similarity("999", "101"); ok {
		t.Error("Similarity() with unknown row should report false")
	}
	if m.HasRow("999") {
		t.Error("HasRow(999) = true")
	}
}

func TestParseSimilarityMatrixErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrEmptyMatrix},
		{"header only", ",A,B\n", ErrEmptyMatrix},
		{"no columns", "id\nA\n", ErrEmptyMatrix},
		{"ragged row", ",A,B\nA,1.0\n", ErrRaggedRow},
		{"duplicate row", ",A,B\nA,1,0\nA,0,1\n", ErrDuplicateListing},
		{"duplicate column", ",A,A\nA,1,0\n", ErrDuplicateListing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSimilarityMatrix(context.Background(), strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimilarityMatrixRectangular(t *testing.T) {
	// Rows and columns need not cover the same listings.
	m, err := ParseSimilarityMatrix(context.Background(), strings.NewReader(",A,B,C\nA,1,0.3,0.6\n"))
	if err != nil {
		t.Fatalf("ParseSimilarityMatrix() error = %v", err)
	}
	if m.NumRows() != 1 || m.NumColumns() != 3 {
		t.Errorf("size = %dx%d, want 1x3", m.NumRows(), m.NumColumns())
	}
	if m.HasRow("B") {
		t.Error("B is a column only")
	}
}

func TestLoadSimilarityMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.csv")
	if err := os.WriteFile(path, []byte(sampleMatrixCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadSimilarityMatrix(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadSimilarityMatrix() error = %v", err)
	}
	if m.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", m.NumRows())
	}

	if _, err := LoadSimilarityMatrix(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewSimilarityMatrixMismatch(t *testing.T) {
	_, err := NewSimilarityMatrix([]string{"A", "B"}, []string{"A"}, [][]float64{{1}})
	if !errors.Is(err, ErrRaggedRow) {
		t.Errorf("error = %v, want ErrRaggedRow", err)
	}
}
