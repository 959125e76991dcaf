package ops

import "testing"

func TestParseEncodedSeconds(t *testing.T) {
	cases := []struct {
		line string
		want float64
		ok   bool
	}{
		{"frame= 120 fps= 30 q=28.0 size= 512KiB time=00:01:23.45 bitrate= 502.1kbits/s", 83.45, true},
		{"time=01:02:03", 3723, true},
		{"size=N/A time=N/A bitrate=N/A", 0, false},
		{"frame=0 fps=0.0", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseEncodedSeconds(tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseEncodedSeconds(%q) = %v, %v; want %v, %v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEncoderProgressClampsToHundred(t *testing.T) {
	var updates []Progress
	sink := encoderProgress("encode", 10, func(p Progress) { updates = append(updates, p) })
	sink("time=00:00:05.00")
	sink("no time marker here")
	sink("time=00:00:15.00")

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %#v", updates)
	}
	if updates[0].Percent != 50 || updates[0].Stage != "encode" {
		t.Fatalf("first update: %#v", updates[0])
	}
	if updates[1].Percent != 100 {
		t.Fatalf("overshoot not clamped: %#v", updates[1])
	}
}

func TestEncoderProgressNilCallback(t *testing.T) {
	if encoderProgress("encode", 10, nil) != nil {
		t.Fatal("nil callback should yield nil sink")
	}
	if encoderProgress("encode", 0, func(Progress) {}) != nil {
		t.Fatal("unknown duration should yield nil sink")
	}
}
