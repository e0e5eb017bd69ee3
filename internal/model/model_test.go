package model

import "testing"

func TestDateFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"25-10-2023", Date{25, 10, 2023}, false},
		{"01-01-0001", Date{1, 1, 1}, false},
		{"30-02-2024", Date{30, 2, 2024}, false}, // calendar correctness not checked
		{"31-12-9999", Date{31, 12, 9999}, false},
		{"5-10-2023", Date{}, true},
		{"25-10-23", Date{}, true},
		{"25/10/2023", Date{}, true},
		{"00-10-2023", Date{}, true},
		{"32-10-2023", Date{}, true},
		{"25-00-2023", Date{}, true},
		{"25-13-2023", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		got, err := DateFromString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("DateFromString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("DateFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDateString(t *testing.T) {
	if got, want := (Date{Day: 5, Month: 1, Year: 2024}).String(), "05-01-2024"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTimeFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Time
		wantErr bool
	}{
		{"0000", Time{0, 0}, false},
		{"2359", Time{23, 59}, false},
		{"0730", Time{7, 30}, false},
		{"070", Time{}, true},
		{"07300", Time{}, true},
		{"07:30", Time{}, true},
		{"2400", Time{}, true},
		{"0060", Time{}, true},
		{"", Time{}, true},
	}

	for _, tt := range tests {
		got, err := TimeFromString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("TimeFromString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("TimeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0000", "0705", "1730", "2359"} {
		parsed, err := TimeFromString(s)
		if err != nil {
			t.Fatalf("TimeFromString(%q) error: %v", s, err)
		}
		if parsed.String() != s {
			t.Errorf("round trip of %q = %q", s, parsed.String())
		}
	}
}

func TestTimeBefore(t *testing.T) {
	if !(Time{7, 0}).Before(Time{17, 30}) {
		t.Error("0700 should be before 1730")
	}
	if (Time{23, 0}).Before(Time{0, 0}) {
		t.Error("0000 should not be after 2300")
	}
	if (Time{13, 0}).Before(Time{13, 0}) {
		t.Error("a time is not before itself")
	}
}

func TestColourFromString(t *testing.T) {
	got, err := ColourFromString("e2531b")
	if err != nil {
		t.Fatalf("ColourFromString error: %v", err)
	}
	if got != "E2531B" {
		t.Errorf("colour = %q, want E2531B (normalized uppercase)", got)
	}
	if got.Hex() != "#E2531B" {
		t.Errorf("Hex() = %q, want #E2531B", got.Hex())
	}

	for _, bad := range []string{"e2531", "e2531bb", "gggggg", "#e2531b", ""} {
		if _, err := ColourFromString(bad); err == nil {
			t.Errorf("ColourFromString(%q) succeeded, want error", bad)
		}
	}
}

func TestEventDirective(t *testing.T) {
	rng := Event{Key: "sleep", Kind: KindRange, Start: Time{7, 0}, End: Time{17, 30}}
	if got, want := rng.Directive(), "sleep 0700-1730"; got != want {
		t.Errorf("range directive = %q, want %q", got, want)
	}

	mark := Event{Key: "eat", Kind: KindMarker, At: Time{6, 0}}
	if got, want := mark.Directive(), "@eat 0600"; got != want {
		t.Errorf("marker directive = %q, want %q", got, want)
	}
}
