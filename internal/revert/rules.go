package revert

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Strategy selects how a rule renders its legacy file.
type Strategy int

const (
	// Plain writes the stored value verbatim.
	Plain Strategy = iota
	// Bool writes "key=<c>" when the value's polarity equals Expect, where c
	// is the lower-cased first character of the value.
	Bool
	// Multi writes one "key=value" line per entry of the section.
	Multi
	// Values writes one value per line for every entry of the section.
	Values
)

func (s Strategy) String() string {
	switch s {
	case Plain:
		return "plain"
	case Bool:
		return "bool"
	case Multi:
		return "multi"
	case Values:
		return "values"
	default:
		return "unknown"
	}
}

// Rule produces one legacy file from the consolidated tree.
type Rule struct {
	File     string   `json:"file" yaml:"file"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Section  string   `json:"section" yaml:"section"`
	// Key is empty for whole-section strategies.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// Expect is the polarity a Bool rule writes on.
	Expect bool `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Render returns the legacy file content for cfg (section → key → entry), or
// false when the rule produces no file.
func (r *Rule) Render(cfg *kvstore.Map) (string, bool) {
	switch r.Strategy {
	case Plain:
		e, ok := cfg.Entry(r.Section, r.Key)
		if !ok {
			return "", false
		}
		return e.Value, true

	case Bool:
		e, ok := cfg.Entry(r.Section, r.Key)
		if !ok {
			return "", false
		}
		c := firstLower(e.Value)
		if truthy(c) != r.Expect {
			return "", false
		}
		return r.Key + "=" + c, true

	case Multi, Values:
		sec, ok := cfg.Sub(r.Section)
		if !ok || sec.Len() == 0 {
			return "", false
		}
		var b strings.Builder
		for _, key := range sec.Keys() {
			e, ok := sec.Entry(key)
			if !ok {
				continue
			}
			if r.Strategy == Multi {
				b.WriteString(key + "=")
			}
			b.WriteString(e.Value + "\n")
		}
		return b.String(), true
	}
	return "", false
}

// firstLower returns the first character of v, lower-cased. An empty value
// yields "".
func firstLower(v string) string {
	r, size := utf8.DecodeRuneInString(strings.ToLower(v))
	if size == 0 {
		return ""
	}
	return string(r)
}

func truthy(c string) bool {
	return c == "1" || c == "t" || c == "y"
}

// Rules returns a copy of the built-in table, in write order.
func Rules() []Rule {
	return slices.Clone(rules)
}

func plain(file, section, key string) Rule {
	return Rule{File: file, Strategy: Plain, Section: section, Key: key}
}

func whenTrue(file, section, key string) Rule {
	return Rule{File: file, Strategy: Bool, Section: section, Key: key, Expect: true}
}

func whenFalse(file, section, key string) Rule {
	return Rule{File: file, Strategy: Bool, Section: section, Key: key}
}

func multi(file, section string) Rule {
	return Rule{File: file, Strategy: Multi, Section: section}
}

var rules = []Rule{
	whenTrue("achievements_bypass.txt", "main::misc", "achievements_bypass"),
	multi("app_paths.txt", "app::paths"),
	plain("build_id.txt", "app::general", "build_id"),
	plain("crash_printer_location.txt", "main::general", "crash_printer_location"),
	// enable_account_avatar is stored with "enable" polarity, the legacy
	// file with "disable" polarity.
	whenFalse("disable_account_avatar.txt", "main::general", "enable_account_avatar"),
	whenTrue("disable_lan_only.txt", "main::connectivity", "disable_lan_only"),
	whenTrue("disable_leaderboards_create_unknown.txt", "main::general", "disable_leaderboards_create_unknown"),
	whenTrue("disable_lobby_creation.txt", "main::connectivity", "disable_lobby_creation"),
	whenTrue("disable_networking.txt", "main::connectivity", "disable_networking"),
	whenTrue("disable_overlay_achievement_notification.txt", "overlay::general", "disable_achievement_notification"),
	whenTrue("disable_overlay_friend_notification.txt", "overlay::general", "disable_friend_notification"),
	whenTrue("disable_overlay_warning_any.txt", "overlay::general", "disable_warning_any"),
	whenTrue("disable_overlay_warning_bad_appid.txt", "overlay::general", "disable_warning_bad_appid"),
	whenTrue("disable_overlay_warning_local_save.txt", "overlay::general", "disable_warning_local_save"),
	whenTrue("disable_sharing_stats_with_gameserver.txt", "main::connectivity", "disable_sharing_stats_with_gameserver"),
	whenTrue("disable_source_query.txt", "main::connectivity", "disable_source_query"),
	multi("dlc.txt", "app::dlcs"),
	whenTrue("download_steamhttp_requests.txt", "main::connectivity", "download_steamhttp_requests"),
	whenFalse("disable_overlay.txt", "overlay::general", "enable_experimental_overlay"),
	whenTrue("enable_experimental_overlay.txt", "overlay::general", "enable_experimental_overlay"),
	plain("force_account_name.txt", "user::general", "account_name"),
	plain("force_branch_name.txt", "app::general", "branch_name"),
	plain("force_language.txt", "user::general", "language"),
	plain("force_listen_port.txt", "main::connectivity", "listen_port"),
	whenTrue("force_steamhttp_success.txt", "main::misc", "force_steamhttp_success"),
	plain("force_steamid.txt", "user::general", "account_steamid"),
	whenTrue("gc_token.txt", "main::general", "gc_token"),
	whenTrue("immediate_gameserver_stats.txt", "main::general", "immediate_gameserver_stats"),
	plain("ip_country.txt", "user::general", "ip_country"),
	whenTrue("is_beta_branch.txt", "app::general", "is_beta_branch"),
	whenTrue("matchmaking_server_details_via_source_query.txt", "main::general", "matchmaking_server_details_via_source_query"),
	whenTrue("matchmaking_server_list_actual_type.txt", "main::general", "matchmaking_server_list_actual_type"),
	whenTrue("new_app_ticket.txt", "main::general", "new_app_ticket"),
	whenTrue("offline.txt", "main::connectivity", "offline"),
	multi("overlay_appearance.txt", "overlay::appearance"),
	plain("overlay_hook_delay_sec.txt", "overlay::general", "hook_delay_sec"),
	plain("overlay_renderer_detector_timeout_sec.txt", "overlay::general", "renderer_detector_timeout_sec"),
	whenTrue("share_leaderboards_over_network.txt", "main::connectivity", "share_leaderboards_over_network"),
	whenTrue("steam_deck.txt", "main::general", "steam_deck"),
	{File: "steam_interfaces.txt", Strategy: Values, Section: "app::steam_interfaces"},
}
