package utils

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.co.id", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain@twice.com", false},
		{"Jane Doe <jane@example.com>", false}, // display names are not bare addresses
		{"jane@", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	if errs.Any() {
		t.Error("empty FieldErrors reports Any() = true")
	}

	errs.Require("name", "  ", "Name is required.")
	errs.Require("email", "x@example.com", "Email is required.")
	errs.MaxLen("note", "abcdef", 3, "Note too long.")

	if !errs.Any() {
		t.Fatal("expected errors")
	}
	if errs["name"] != "Name is required." {
		t.Errorf("name error = %q", errs["name"])
	}
	if _, ok := errs["email"]; ok {
		t.Error("email error set for non-blank value")
	}
	if errs["note"] != "Note too long." {
		t.Errorf("note error = %q", errs["note"])
	}

	// First message per field wins.
	errs.Add("name", "Another message.")
	if errs["name"] != "Name is required." {
		t.Errorf("Add overwrote first message: %q", errs["name"])
	}
}
