package lang

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"en", "en", false},
		{"EN", "en", false},
		{"pt-br", "pt-BR", false},
		{" de ", "de", false},
		{"", "", true},
		{"e", "", true},
		{"en-us-extra", "", true},
		{"12", "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Normalize(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Normalize(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	if got := Lookup("de", KeyDialogTitle); got != "Bilddetails" {
		t.Fatalf("unexpected german title: %q", got)
	}
	// Region variants fall back to the bare language catalog.
	if got := Lookup("de-AT", KeyDialogTitle); got != "Bilddetails" {
		t.Fatalf("unexpected de-AT title: %q", got)
	}
	// Unknown languages fall back to the default catalog.
	if got := Lookup("fr", KeyDialogTitle); got != "Image details" {
		t.Fatalf("unexpected fallback title: %q", got)
	}
	// Invalid codes behave like the default language.
	if got := Lookup("???", KeyDialogTitle); got != "Image details" {
		t.Fatalf("unexpected title for invalid code: %q", got)
	}
}

func TestLookupUnknownKeyReturnsKey(t *testing.T) {
	if got := Lookup("en", "no_such_key"); got != "no_such_key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestStringsCoversDefaultCatalog(t *testing.T) {
	strings := Strings("ru")
	if len(strings) != len(catalogs[Default]) {
		t.Fatalf("expected %d entries, got %d", len(catalogs[Default]), len(strings))
	}
	if strings[KeyConfirmDelete] == "" {
		t.Fatal("expected confirm delete string to be present")
	}
}
