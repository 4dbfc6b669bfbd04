package speaker

import "testing"

func TestIdentifierZeroVersusUnknown(t *testing.T) {
	var unset Identifier
	if !unset.IsZero() {
		t.Fatal("zero identifier should report unset")
	}
	if unset.Name() != UnknownName {
		t.Fatalf("zero identifier should resolve to sentinel, got %q", unset.Name())
	}

	unknown := Unknown()
	if unknown.IsZero() {
		t.Fatal("unknown sentinel should not be the zero value")
	}
	if !unknown.IsUnknown() {
		t.Fatal("unknown sentinel should report IsUnknown")
	}
}

func TestNewIdentifierBlankIsUnknown(t *testing.T) {
	if id := NewIdentifier("  "); !id.IsUnknown() {
		t.Fatalf("blank name should map to unknown, got %q", id)
	}
	if id := NewIdentifier("alice"); id.Name() != "alice" {
		t.Fatalf("unexpected name: %q", id.Name())
	}
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"M":  GenderMale,
		"m":  GenderMale,
		" F": GenderFemale,
		"U":  GenderUnknown,
		"x":  GenderUnknown,
		"":   GenderUnknown,
	}
	for in, want := range cases {
		if got := ParseGender(in); got != want {
			t.Fatalf("ParseGender(%q) = %q, want %q", in, got, want)
		}
	}
}
