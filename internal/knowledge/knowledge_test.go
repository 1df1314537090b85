package knowledge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDetectBundles(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		want    []string
		wantErr bool
	}{
		{
			name: "react project",
			pkg:  `{"dependencies": {"react": "^18.0.0", "react-dom": "^18.0.0"}}`,
			want: []string{"react"},
		},
		{
			name: "dev dependencies count too",
			pkg:  `{"devDependencies": {"vitest": "^1.0.0", "typescript": "^5.0.0"}}`,
			want: []string{"testing", "typescript"},
		},
		{
			name: "multiple matching bundles sorted",
			pkg:  `{"dependencies": {"next": "14.0.0", "express": "4.0.0"}, "devDependencies": {"jest": "29.0.0"}}`,
			want: []string{"node-backend", "react", "testing"},
		},
		{
			name: "no matches",
			pkg:  `{"dependencies": {"lodash": "^4.0.0"}}`,
			want: nil,
		},
		{
			name:    "malformed package.json",
			pkg:     `{nope`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "package.json")
			if err := os.WriteFile(path, []byte(tt.pkg), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := DetectBundles(path, DefaultCatalog)
			if tt.wantErr {
				if err == nil {
					t.Fatal("DetectBundles() = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectBundles() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DetectBundles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectBundlesMissingFile(t *testing.T) {
	got, err := DetectBundles(filepath.Join(t.TempDir(), "package.json"), DefaultCatalog)
	if err != nil {
		t.Fatalf("DetectBundles() unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("DetectBundles() = %v, want nil for missing file", got)
	}
}

func TestSyncFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "sub", "dst.md")
	if err := os.WriteFile(src, []byte("guide v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// First sync copies.
	copied, err := SyncFile(src, dst)
	if err != nil {
		t.Fatalf("SyncFile() unexpected error: %v", err)
	}
	if !copied {
		t.Error("first SyncFile() copied = false")
	}

	// Identical content: no re-copy.
	copied, err = SyncFile(src, dst)
	if err != nil {
		t.Fatalf("SyncFile() unexpected error: %v", err)
	}
	if copied {
		t.Error("second SyncFile() copied = true for identical content")
	}

	// Changed source: re-sync needed.
	if err := os.WriteFile(src, []byte("guide v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	copied, err = SyncFile(src, dst)
	if err != nil {
		t.Fatalf("SyncFile() unexpected error: %v", err)
	}
	if !copied {
		t.Error("SyncFile() copied = false after source changed")
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "guide v2\n" {
		t.Errorf("dst = %q, want updated content", data)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")

	r, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry(missing) unexpected error: %v", err)
	}
	if len(r.Bundles) != 0 {
		t.Fatalf("fresh registry has %d entries", len(r.Bundles))
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	r.Record("react", "abc1234", now)
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() unexpected error: %v", err)
	}
	entry, ok := loaded.Bundles["react"]
	if !ok {
		t.Fatal("react entry missing after reload")
	}
	if entry.SyncedAt != "2026-08-30T12:00:00Z" {
		t.Errorf("SyncedAt = %q", entry.SyncedAt)
	}
	if entry.Commit != "abc1234" {
		t.Errorf("Commit = %q", entry.Commit)
	}
}
