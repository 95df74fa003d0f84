// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package validation

import (
	"math"
	"strings"
	"testing"
)

type point struct {
	Latitude  float64 `json:"latitude" validate:"finite,gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"finite,gte=-180,lte=180"`
}

type testRequest struct {
	UserID   string   `json:"user_id" validate:"required"`
	TopK     *int     `json:"top_k" validate:"omitempty,gte=0"`
	Alpha    *float64 `json:"alpha" validate:"omitempty,finite,gte=0"`
	Scope    []string `json:"listing_id_queries" validate:"omitempty,max=3,dive,listingid"`
	Location *point   `json:"location" validate:"omitempty"`
	Plain    string   `query:"plain_name" validate:"max=1"`
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func validRequest() testRequest { return testRequest{UserID: "U1"} }

func withTopK(k int) testRequest {
	r := validRequest()
	r.TopK = intPtr(k)
	return r
}

func withAlpha(a float64) testRequest {
	r := validRequest()
	r.Alpha = floatPtr(a)
	return r
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input testRequest
	}{
		{"minimal", validRequest()},
		{"zero top_k", withTopK(0)},
		{"zero alpha", withAlpha(0)},
		{"scope", testRequest{UserID: "U1", Scope: []string{"1", "2"}}},
		{"location", testRequest{UserID: "U1", Location: &point{Latitude: 1.35, Longitude: 103.8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     testRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing user", testRequest{}, "user_id", "required", "user_id is required"},
		{"negative top_k", withTopK(-1), "top_k", "gte", "top_k must be greater than or equal to 0"},
		{"negative alpha", withAlpha(-0.5), "alpha", "gte", "alpha must be greater than or equal to 0"},
		{"nan alpha", withAlpha(math.NaN()), "alpha", "finite", "alpha must be a finite number"},
		{"inf alpha", withAlpha(math.Inf(1)), "alpha", "finite", "alpha must be a finite number"},
		{"blank scope id", testRequest{UserID: "U1", Scope: []string{" "}}, "listing_id_queries[0]", "listingid", "listing_id_queries[0] must be a non-empty listing id"},
		{"scope too long", testRequest{UserID: "U1", Scope: []string{"1", "2", "3", "4"}}, "listing_id_queries", "max", "listing_id_queries must be at most 3 items"},
		{"bad latitude", testRequest{UserID: "U1", Location: &point{Latitude: 91}}, "location.latitude", "lte", "location.latitude must be less than or equal to 90"},
		{"query tag name", testRequest{UserID: "U1", Plain: "xy"}, "plain_name", "max", "plain_name must be at most 1 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	r := withTopK(-3)
	apiErr := ValidateStruct(&r).ToAPIError()

	if apiErr.Code != CodeValidationError {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "top_k" {
		t.Errorf("Details[field] = %v", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	r := testRequest{TopK: intPtr(-1), Alpha: floatPtr(-1)}
	verr := ValidateStruct(&r)
	if verr == nil || len(verr.Errors()) != 3 {
		t.Fatalf("want 3 errors, got %v", verr)
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %#v", apiErr.Details["fields"])
	}
	for _, want := range []string{"user_id is required", "top_k", "alpha"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
	if !strings.Contains(verr.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", verr.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != CodeValidationError || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty Error() message changed")
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Errors()[0].Field() != "unknown" {
		t.Errorf("ValidateStruct(string) = %v", verr)
	}
}
