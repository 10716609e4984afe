package revert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

func cfgWith(section, key, value string) *kvstore.Map {
	cfg := kvstore.New()
	cfg.Child(section).Set(key, kvstore.Entry{Value: value})
	return cfg
}

func findRule(t *testing.T, file string) *Rule {
	t.Helper()
	for _, r := range Rules() {
		if r.File == file {
			return &r
		}
	}
	require.Failf(t, "rule not found", "%s", file)
	return nil
}

func TestRules_Table(t *testing.T) {
	table := Rules()
	require.Len(t, table, 40)

	seen := make(map[string]bool)
	for _, r := range table {
		assert.False(t, seen[r.File], "duplicate file %s", r.File)
		seen[r.File] = true
		assert.NotEmpty(t, r.Section, r.File)
		switch r.Strategy {
		case Plain, Bool:
			assert.NotEmpty(t, r.Key, r.File)
		case Multi, Values:
			assert.Empty(t, r.Key, r.File)
		}
	}

	table[0].File = "changed.txt"
	assert.Equal(t, "achievements_bypass.txt", Rules()[0].File)
}

func TestRender_Plain(t *testing.T) {
	r := findRule(t, "force_language.txt")

	got, ok := r.Render(cfgWith("user::general", "language", "  french "))
	require.True(t, ok)
	assert.Equal(t, "  french ", got, "verbatim, no trailing newline")

	_, ok = r.Render(cfgWith("user::general", "account_name", "x"))
	assert.False(t, ok)
}

func TestRender_BoolPolarity(t *testing.T) {
	tests := []struct {
		file    string
		section string
		key     string
		value   string
		want    string
		written bool
	}{
		{"offline.txt", "main::connectivity", "offline", "1", "offline=1", true},
		{"offline.txt", "main::connectivity", "offline", "True", "offline=t", true},
		{"offline.txt", "main::connectivity", "offline", "yes", "offline=y", true},
		{"offline.txt", "main::connectivity", "offline", "0", "", false},
		{"offline.txt", "main::connectivity", "offline", "", "", false},
		{"disable_account_avatar.txt", "main::general", "enable_account_avatar", "0", "enable_account_avatar=0", true},
		{"disable_account_avatar.txt", "main::general", "enable_account_avatar", "false", "enable_account_avatar=f", true},
		{"disable_account_avatar.txt", "main::general", "enable_account_avatar", "1", "", false},
		{"disable_overlay.txt", "overlay::general", "enable_experimental_overlay", "0", "enable_experimental_overlay=0", true},
		{"disable_overlay.txt", "overlay::general", "enable_experimental_overlay", "1", "", false},
		{"enable_experimental_overlay.txt", "overlay::general", "enable_experimental_overlay", "1", "enable_experimental_overlay=1", true},
		{"enable_experimental_overlay.txt", "overlay::general", "enable_experimental_overlay", "0", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.value, func(t *testing.T) {
			r := findRule(t, tt.file)
			got, ok := r.Render(cfgWith(tt.section, tt.key, tt.value))
			assert.Equal(t, tt.written, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_MultiKeepsOrder(t *testing.T) {
	cfg := kvstore.New()
	dlcs := cfg.Child("app::dlcs")
	dlcs.Set("unlock_all", kvstore.Entry{Value: "0"})
	dlcs.Set("20", kvstore.Entry{Value: "Artbook"})
	dlcs.Set("10", kvstore.Entry{Value: "Soundtrack DLC"})

	got, ok := findRule(t, "dlc.txt").Render(cfg)
	require.True(t, ok)
	assert.Equal(t, "unlock_all=0\n20=Artbook\n10=Soundtrack DLC\n", got)
}

func TestRender_EmptySectionWritesNothing(t *testing.T) {
	cfg := kvstore.New()
	cfg.Child("app::paths")

	_, ok := findRule(t, "app_paths.txt").Render(cfg)
	assert.False(t, ok)
}

func TestRender_Values(t *testing.T) {
	cfg := kvstore.New()
	sec := cfg.Child("app::steam_interfaces")
	sec.Set("client", kvstore.Entry{Value: "SteamClient020"})
	sec.Set("user", kvstore.Entry{Value: "SteamUser021"})

	got, ok := findRule(t, "steam_interfaces.txt").Render(cfg)
	require.True(t, ok)
	assert.Equal(t, "SteamClient020\nSteamUser021\n", got)
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "bool", Bool.String())
	assert.Equal(t, "multi", Multi.String())
	assert.Equal(t, "values", Values.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}
