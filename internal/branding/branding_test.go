package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"cli name", CLIName(), "recordx"},
		{"home dir", HomeDir(), ".recordx"},
		{"env prefix", EnvPrefix(), "RECORDX"},
		{"snapshot file", SnapshotFile(), ".records.json"},
		{"env var", EnvVar("strategy"), "RECORDX_STRATEGY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
