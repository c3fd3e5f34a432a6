// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package validation

import (
	"strings"
	"testing"
)

type searchRequest struct {
	Query string `validate:"max=200"`
	Limit int    `validate:"gte=0,lte=150"`
}

func TestValidateStructPasses(t *testing.T) {
	req := searchRequest{Query: "wakhra swag", Limit: 10}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected validation to pass, got: %v", err)
	}
}

func TestValidateStructEmptyQueryAllowed(t *testing.T) {
	// Short and empty queries are a defined result class, not an input
	// error, so the query field carries no "required" tag.
	req := searchRequest{Query: "", Limit: 0}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected empty query to pass validation, got: %v", err)
	}
}

func TestValidateStructQueryTooLong(t *testing.T) {
	req := searchRequest{Query: strings.Repeat("x", 201), Limit: 10}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error for oversized query")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "at most 200 characters") {
		t.Errorf("Expected character-count message, got: %s", apiErr.Message)
	}
	if apiErr.Details["field"] != "Query" {
		t.Errorf("Expected failing field Query, got %v", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	req := searchRequest{Query: strings.Repeat("x", 300), Limit: 9999}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	if len(err.Errors()) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Expected fields detail list, got %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("Expected 2 field details, got %d", len(fields))
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("Expected combined message with separator, got: %s", apiErr.Message)
	}
}

func TestValidationErrorAccessors(t *testing.T) {
	req := searchRequest{Limit: -1}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error for negative limit")
	}

	fieldErr := err.Errors()[0]
	if fieldErr.Field() != "Limit" {
		t.Errorf("Expected field Limit, got %s", fieldErr.Field())
	}
	if fieldErr.Tag() != "gte" {
		t.Errorf("Expected tag gte, got %s", fieldErr.Tag())
	}
	if fieldErr.Param() != "0" {
		t.Errorf("Expected param 0, got %s", fieldErr.Param())
	}
	if fieldErr.Value() != -1 {
		t.Errorf("Expected value -1, got %v", fieldErr.Value())
	}
}

func TestTranslateErrorMessages(t *testing.T) {
	type bounded struct {
		Name  string `validate:"required"`
		Mode  string `validate:"omitempty,oneof=json console"`
		Count int    `validate:"min=1"`
		Label string `validate:"omitempty,min=3"`
	}

	tests := []struct {
		name    string
		input   bounded
		message string
	}{
		{
			name:    "required",
			input:   bounded{Count: 5},
			message: "Name is required",
		},
		{
			name:    "oneof",
			input:   bounded{Name: "x", Count: 5, Mode: "xml"},
			message: "Mode must be one of: json console",
		},
		{
			name:    "numeric min",
			input:   bounded{Name: "x", Count: 0},
			message: "Count must be at least 1",
		},
		{
			name:    "string min",
			input:   bounded{Name: "x", Count: 5, Label: "ab"},
			message: "Label must be at least 3 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected message containing %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("Expected GetValidator to return the same instance")
	}
}

func TestValidateStructConcurrent(t *testing.T) {
	done := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		go func(n int) {
			req := searchRequest{Query: "concurrent", Limit: n % 150}
			if err := ValidateStruct(&req); err != nil {
				t.Errorf("Unexpected validation failure: %v", err)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 50; i++ {
		<-done
	}
}
