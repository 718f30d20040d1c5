package toc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSeed(t *testing.T) {
	doc := Seed()

	if doc.Reason != "" {
		t.Errorf("Reason = %q, want empty", doc.Reason)
	}
	if len(doc.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", doc.Tags)
	}
	if len(doc.Assumptions) != 0 {
		t.Errorf("Assumptions = %v, want empty", doc.Assumptions)
	}
	if len(doc.Programmes) != 1 {
		t.Fatalf("len(Programmes) = %d, want 1", len(doc.Programmes))
	}
	if len(doc.DirectOutcomes) != 1 {
		t.Fatalf("len(DirectOutcomes) = %d, want 1", len(doc.DirectOutcomes))
	}
	if got := len(doc.DirectOutcomes[0].SubOutcomes); got != 1 {
		t.Errorf("len(DirectOutcomes[0].SubOutcomes) = %d, want 1", got)
	}
	if doc.DirectOutcomes[0].Expanded {
		t.Error("seed outcome should start collapsed")
	}
	if len(doc.IndirectOutcomes) != 3 {
		t.Errorf("len(IndirectOutcomes) = %d, want 3", len(doc.IndirectOutcomes))
	}
	if len(doc.UltimateOutcomes) != 2 {
		t.Errorf("len(UltimateOutcomes) = %d, want 2", len(doc.UltimateOutcomes))
	}
	if doc.Meta.SavedAt != "" {
		t.Errorf("Meta.SavedAt = %q, want empty", doc.Meta.SavedAt)
	}
}

func TestDocument_Clone_Independent(t *testing.T) {
	doc := Seed()
	doc.Tags = []string{"youth"}
	doc.Assumptions = []Assumption{{ID: "a1", Description: "funding continues", Certainty: CertaintyModerately}}

	clone := doc.Clone()
	clone.Reason = "changed"
	clone.Tags[0] = "families"
	clone.Assumptions[0].Description = "changed"
	clone.DirectOutcomes[0].Title = "changed"
	clone.DirectOutcomes[0].SubOutcomes[0].Text = "changed"
	clone.IndirectOutcomes[0].Text = "changed"
	clone.UltimateOutcomes[0].Text = "changed"

	if doc.Reason == "changed" {
		t.Error("mutating the clone changed the original Reason")
	}
	if doc.Tags[0] != "youth" {
		t.Error("mutating the clone changed the original Tags")
	}
	if doc.Assumptions[0].Description != "funding continues" {
		t.Error("mutating the clone changed the original Assumptions")
	}
	if doc.DirectOutcomes[0].Title == "changed" {
		t.Error("mutating the clone changed the original DirectOutcomes")
	}
	if doc.DirectOutcomes[0].SubOutcomes[0].Text == "changed" {
		t.Error("mutating the clone changed the original SubOutcomes")
	}
	if doc.IndirectOutcomes[0].Text == "changed" {
		t.Error("mutating the clone changed the original IndirectOutcomes")
	}
	if doc.UltimateOutcomes[0].Text == "changed" {
		t.Error("mutating the clone changed the original UltimateOutcomes")
	}
}

func TestDocument_Clone_KeepsEmptySlices(t *testing.T) {
	doc := Seed()
	clone := doc.Clone()

	if clone.Tags == nil {
		t.Error("Clone turned an empty Tags slice into nil")
	}
	if clone.Assumptions == nil {
		t.Error("Clone turned an empty Assumptions slice into nil")
	}

	// Empty collections have to serialize as arrays, not null.
	b, err := json.Marshal(clone)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"tags":[]`) {
		t.Errorf("serialized clone missing empty tags array: %s", b)
	}
	if !strings.Contains(string(b), `"assumptions":[]`) {
		t.Errorf("serialized clone missing empty assumptions array: %s", b)
	}
}

func TestDocument_JSONFieldNames(t *testing.T) {
	doc := Seed()
	doc.Meta.SavedAt = "2025-06-01T12:00:00Z"

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, field := range []string{
		`"reason"`, `"tags"`, `"assumptions"`, `"programmes"`,
		`"directOutcomes"`, `"indirectOutcomes"`, `"ultimateOutcomes"`,
		`"meta"`, `"savedAt"`,
	} {
		if !strings.Contains(string(b), field) {
			t.Errorf("serialized document missing field %s", field)
		}
	}
}
