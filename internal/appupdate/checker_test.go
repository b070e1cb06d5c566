package appupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeReleaseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "v1.2.3", want: "v1.2.3"},
		{in: "1.2.3", want: "v1.2.3"},
		{in: " v1.2.3 ", want: "v1.2.3"},
		{in: "v1.2", want: "v1.2.0"},
		{in: "v1.2.3-rc.1", want: ""},
		{in: "v1.2.3+build.5", want: ""},
		{in: "dev", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := normalizeReleaseVersion(tt.in); got != tt.want {
			t.Errorf("normalizeReleaseVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectInstallMethod(t *testing.T) {
	tests := []struct {
		path string
		want InstallMethod
	}{
		{path: "/opt/homebrew/bin/usagelens", want: InstallMethodHomebrew},
		{path: "/usr/local/Cellar/usagelens/1.2.3/bin/usagelens", want: InstallMethodHomebrew},
		{path: "/home/u/go/bin/usagelens", want: InstallMethodGoInstall},
		{path: "/usr/local/bin/usagelens", want: InstallMethodUnknown},
		{path: "", want: InstallMethodUnknown},
	}
	for _, tt := range tests {
		if got := detectInstallMethod(tt.path); got != tt.want {
			t.Errorf("detectInstallMethod(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCheck_UpdateAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v2.0.0"}`))
	}))
	defer server.Close()

	result, err := Check(context.Background(), CheckOptions{
		CurrentVersion:   "v1.0.0",
		ExecutablePath:   "/opt/homebrew/bin/usagelens",
		LatestReleaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !result.UpdateAvailable {
		t.Error("UpdateAvailable = false, want true for v1.0.0 -> v2.0.0")
	}
	if result.LatestVersion != "v2.0.0" {
		t.Errorf("LatestVersion = %q, want v2.0.0", result.LatestVersion)
	}
	if result.InstallMethod != InstallMethodHomebrew {
		t.Errorf("InstallMethod = %v, want homebrew", result.InstallMethod)
	}
	if result.UpgradeHint != "brew upgrade usagelens" {
		t.Errorf("UpgradeHint = %q", result.UpgradeHint)
	}
}

func TestCheck_AlreadyLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v1.0.0"}`))
	}))
	defer server.Close()

	result, err := Check(context.Background(), CheckOptions{
		CurrentVersion:   "v1.0.0",
		LatestReleaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.UpdateAvailable {
		t.Error("UpdateAvailable = true for equal versions")
	}
}

func TestCheck_DevBuildSkipsNetwork(t *testing.T) {
	result, err := Check(context.Background(), CheckOptions{
		CurrentVersion:   "dev",
		LatestReleaseURL: "http://127.0.0.1:0/unreachable",
	})
	if err != nil {
		t.Fatalf("Check() error: %v (dev builds must not hit the network)", err)
	}
	if result.UpdateAvailable {
		t.Error("UpdateAvailable = true for a dev build")
	}
	if result.LatestVersion != "" {
		t.Errorf("LatestVersion = %q, want empty", result.LatestVersion)
	}
}

func TestCheck_NonSemverTagRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "nightly-2025-08-01"}`))
	}))
	defer server.Close()

	if _, err := Check(context.Background(), CheckOptions{
		CurrentVersion:   "v1.0.0",
		LatestReleaseURL: server.URL,
	}); err == nil {
		t.Fatal("expected error for non-semver release tag")
	}
}
