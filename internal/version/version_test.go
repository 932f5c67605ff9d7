package version

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		in                  string
		major, minor, patch string
	}{
		{in: "0.1.0-dev", major: "0", minor: "1", patch: "0-dev"},
		{in: "1.2.3", major: "1", minor: "2", patch: "3"},
		{in: "dev", major: "dev"},
		{in: "1.2", major: "1.2"},
	}
	for _, tt := range tests {
		major, minor, patch := split(tt.in)
		if major != tt.major || minor != tt.minor || patch != tt.patch {
			t.Fatalf("split(%q) = %q %q %q", tt.in, major, minor, patch)
		}
	}
}
