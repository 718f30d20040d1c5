package toc

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"\t\n", ""},
		{"hello", "hello"},
		{"  hello  ", "hello"},
		{"  hello world  ", "hello world"},
		{"inner   spaces kept", "inner   spaces kept"},
	}

	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Youth", "youth"},
		{"  Youth  ", "youth"},
		{"YOUTH", "youth"},
		{"Young People", "young people"},
		{"Young   People", "young   people"},
		{"Young\tPeople", "young\tpeople"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFold_EquivalentForms(t *testing.T) {
	// All surface forms of the same tag fold to one canonical value.
	forms := []string{"Youth", "youth", " YOUTH ", "yOuTh"}
	want := Fold(forms[0])
	for _, f := range forms[1:] {
		if got := Fold(f); got != want {
			t.Errorf("Fold(%q) = %q, want %q", f, got, want)
		}
	}
}

func TestFold_InternalWhitespaceIsSignificant(t *testing.T) {
	if Fold("Youth  Club") == Fold("Youth Club") {
		t.Error("Fold collapsed internal whitespace; differently spaced tags must stay distinct")
	}
}
