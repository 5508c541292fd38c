package buildinfo

import "testing"

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"dev", "none", "unknown", "dev (commit none, built unknown)"},
		{"v1.2.3", "1a2b3c4d5e6f", "2026-01-02T03:04:05Z", "v1.2.3 (commit 1a2b3c4, built 2026-01-02T03:04:05Z)"},
	}
	for _, tt := range tests {
		Version, Commit, Date = tt.version, tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = "v0.1.0"
	want := "{{.Name}} version v0.1.0\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
