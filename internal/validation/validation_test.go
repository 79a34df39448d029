package validation

import (
	"testing"

	"github.com/quillbase/quillstore/types"
)

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "users", false},
		{"with underscore", "user_events", false},
		{"empty", "", true},
		{"reserved prefix", "$internal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollectionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCollectionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollection(t *testing.T) {
	valid := types.Collection{
		Name: "users",
		Attributes: []types.Attribute{
			{Key: "name", Type: types.AttributeString, Required: true},
			{Key: "score", Type: types.AttributeInteger},
			{Key: "tags", Type: types.AttributeString, Array: true},
		},
	}
	if err := ValidateCollection(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		collection types.Collection
	}{
		{
			"empty attribute key",
			types.Collection{Name: "users", Attributes: []types.Attribute{
				{Key: "", Type: types.AttributeString},
			}},
		},
		{
			"reserved attribute key",
			types.Collection{Name: "users", Attributes: []types.Attribute{
				{Key: "$id", Type: types.AttributeString},
			}},
		},
		{
			"dollar-prefixed attribute key",
			types.Collection{Name: "users", Attributes: []types.Attribute{
				{Key: "$custom", Type: types.AttributeString},
			}},
		},
		{
			"duplicate attribute key",
			types.Collection{Name: "users", Attributes: []types.Attribute{
				{Key: "name", Type: types.AttributeString},
				{Key: "name", Type: types.AttributeString},
			}},
		},
		{
			"unknown attribute type",
			types.Collection{Name: "users", Attributes: []types.Attribute{
				{Key: "blob", Type: types.AttributeType("binary")},
			}},
		},
		{
			"invalid collection name",
			types.Collection{Name: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateCollection(tt.collection); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
