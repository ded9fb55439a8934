package flow

import "testing"

func TestParseDurationStringVectors(t *testing.T) {
	cases := []struct {
		in   string
		want int64 // nanoseconds
	}{
		{"0", 0},
		{"1h", 3_600_000_000_000},
		{"5m", 300_000_000_000},
		{"10s", 10_000_000_000},
		{"5ms", 5_000_000},
		{"60us", 60_000},
		{"328ns", 328},
		{"6h5m4s3ms2us1ns", 21_904_003_002_001},
		{"4.5h", 16_200_000_000_000},
	}
	for _, tc := range cases {
		d, err := ParseDuration(Str(tc.in))
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", tc.in, err)
		}
		if int64(d) != tc.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.in, int64(d), tc.want)
		}
	}
}

func TestParseDurationErrors(t *testing.T) {
	cases := []string{"5", "5t", ".h", ""}
	for _, in := range cases {
		if _, err := ParseDuration(Str(in)); err == nil {
			t.Errorf("ParseDuration(%q): expected error", in)
		}
	}
}

func TestParseDurationRoundTrip(t *testing.T) {
	vectors := []string{"0", "1h", "5m", "10s", "5ms", "60us", "328ns", "6h5m4s3ms2us1ns", "4.5h"}
	for _, in := range vectors {
		d, err := ParseDuration(Str(in))
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", in, err)
		}
		again, err := ParseDuration(Int(int64(d) / 1_000_000))
		if err != nil {
			t.Fatalf("re-parse ms total for %q: %v", in, err)
		}
		// Millisecond-granularity re-parse should land within 1ms of the original.
		delta := int64(d) - int64(again)
		if delta < 0 {
			delta = -delta
		}
		if delta > 1_000_000 {
			t.Errorf("round trip for %q drifted by %dns", in, delta)
		}
	}
}

func TestParseDurationNumericLiterals(t *testing.T) {
	d, err := ParseDuration(Int(1500))
	if err != nil {
		t.Fatal(err)
	}
	if d.Milliseconds() != 1500 {
		t.Errorf("integer literal should be milliseconds, got %s", d)
	}

	d, err = ParseDuration(Float(4.5))
	if err != nil {
		t.Fatal(err)
	}
	if d.Seconds() != 4.5 {
		t.Errorf("float literal should be seconds, got %s", d)
	}
}
