// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestCurrentDefaults(t *testing.T) {
	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want %q", info.Version, "dev")
	}
	if info.GitCommit != "unknown" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "unknown")
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.2.0", GitCommit: "abc1234", BuildTime: "2026-03-01T12:00:00Z"}
	want := "textura v1.2.0 (commit abc1234, built 2026-03-01T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
