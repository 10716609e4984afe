package legacy

import (
	"regexp"
	"slices"
)

// Destination files of the consolidated layout.
const (
	FileMain    = "configs.main.ini"
	FileApp     = "configs.app.ini"
	FileUser    = "configs.user.ini"
	FileOverlay = "configs.overlay.ini"
)

// Kind selects how a rule reads its legacy file.
type Kind int

const (
	KindValue Kind = iota
	KindFlag
	KindPairs
	KindWords
	KindInterfaces
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFlag:
		return "flag"
	case KindPairs:
		return "pairs"
	case KindWords:
		return "words"
	case KindInterfaces:
		return "interfaces"
	default:
		return "unknown"
	}
}

// Target is where a rule's facts land. Key is empty for multi-entry kinds,
// whose keys come from the file contents.
type Target struct {
	File    string `json:"file" yaml:"file"`
	Section string `json:"section" yaml:"section"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Rule recognises legacy files and describes the facts they produce.
type Rule struct {
	// Names are exact filenames, lower case, in precedence order: when more
	// than one is present the earlier name is applied first and wins.
	Names []string
	// Pattern matches the folded filename when Names is empty.
	Pattern *regexp.Regexp

	Kind    Kind
	Target  Target
	Comment string

	// Literal is the value written by KindFlag rules.
	Literal string
	// KeepSpaces makes KindValue strip only the line ending.
	KeepSpaces bool
	// Control entries are merged before any per-line entry, even when the
	// file has no lines.
	Control []Control
}

// Control is a fixed entry of a multi-entry section.
type Control struct {
	Key     string
	Value   string
	Comment string
}

// Match reports whether the folded filename is recognised, together with its
// precedence rank among the rule's names.
func (r *Rule) Match(folded string) (rank int, ok bool) {
	if len(r.Names) == 0 {
		if r.Pattern != nil && r.Pattern.MatchString(folded) {
			return 0, true
		}
		return 0, false
	}
	for i, name := range r.Names {
		if foldName(name) == folded {
			return i, true
		}
	}
	return 0, false
}

// Label returns a human-readable description of what the rule matches.
func (r *Rule) Label() string {
	if len(r.Names) > 0 {
		return r.Names[0]
	}
	if r.Pattern != nil {
		return r.Pattern.String()
	}
	return ""
}

// Rules returns a copy of the built-in table, in application order.
func Rules() []Rule {
	return slices.Clone(rules)
}

func value(file, section, key, comment string, names ...string) Rule {
	return Rule{
		Names:   names,
		Kind:    KindValue,
		Target:  Target{File: file, Section: section, Key: key},
		Comment: comment,
	}
}

func verbatim(file, section, key, comment string, names ...string) Rule {
	r := value(file, section, key, comment, names...)
	r.KeepSpaces = true
	return r
}

func flag(file, section, key, literal, comment string, names ...string) Rule {
	return Rule{
		Names:   names,
		Kind:    KindFlag,
		Target:  Target{File: file, Section: section, Key: key},
		Comment: comment,
		Literal: literal,
	}
}

func enabled(file, section, key, comment string, names ...string) Rule {
	return flag(file, section, key, "1", comment, names...)
}

var rules = []Rule{
	verbatim(FileUser, "user::general", "account_name",
		"user account name",
		"force_account_name.txt", "account_name.txt"),
	value(FileApp, "app::general", "branch_name",
		"the name of the beta branch",
		"force_branch_name.txt"),
	value(FileUser, "user::general", "language",
		"the language reported to the app/game, https://partner.steamgames.com/doc/store/localization/languages",
		"force_language.txt", "language.txt"),
	value(FileMain, "main::connectivity", "listen_port",
		"change the UDP/TCP port the emulator listens on",
		"force_listen_port.txt", "listen_port.txt"),
	value(FileUser, "user::general", "account_steamid",
		"Steam64 format",
		"force_steamid.txt", "user_steam_id.txt"),
	value(FileUser, "user::general", "ip_country",
		"report a country IP if the game queries it, https://www.iban.com/country-codes",
		"ip_country.txt"),
	{
		Names:  []string{"overlay_appearance.txt"},
		Kind:   KindWords,
		Target: Target{File: FileOverlay, Section: "overlay::appearance"},
	},
	value(FileApp, "app::general", "build_id",
		"allow the app/game to show the correct build id",
		"build_id.txt"),
	flag(FileMain, "main::general", "enable_account_avatar", "0",
		"enable avatar functionality",
		"disable_account_avatar.txt"),
	enabled(FileMain, "main::connectivity", "disable_networking",
		"disable all steam networking interface functionality",
		"disable_networking.txt"),
	enabled(FileMain, "main::connectivity", "disable_sharing_stats_with_gameserver",
		"prevent sharing stats and achievements with any game server, this also disables the interface ISteamGameServerStats",
		"disable_sharing_stats_with_gameserver.txt"),
	enabled(FileMain, "main::connectivity", "disable_source_query",
		"do not send server details to the server browser, only works for game servers",
		"disable_source_query.txt"),
	value(FileOverlay, "overlay::general", "hook_delay_sec",
		"amount of time to wait before attempting to detect and hook the renderer",
		"overlay_hook_delay_sec.txt"),
	value(FileOverlay, "overlay::general", "renderer_detector_timeout_sec",
		"timeout for the renderer detector",
		"overlay_renderer_detector_timeout_sec.txt"),
	enabled(FileOverlay, "overlay::general", "enable_experimental_overlay",
		experimentalOverlayComment,
		"enable_experimental_overlay.txt"),
	flag(FileOverlay, "overlay::general", "enable_experimental_overlay", "0",
		experimentalOverlayComment,
		"disable_overlay.txt"),
	{
		Names:  []string{"app_paths.txt"},
		Kind:   KindPairs,
		Target: Target{File: FileApp, Section: "app::paths"},
	},
	{
		Names:  []string{"dlc.txt"},
		Kind:   KindPairs,
		Target: Target{File: FileApp, Section: "app::dlcs"},
		Control: []Control{
			{Key: "unlock_all", Value: "0", Comment: "should the emu report all DLCs as unlocked, default=1"},
		},
	},
	enabled(FileMain, "main::misc", "achievements_bypass",
		"force SetAchievement() to always return true",
		"achievements_bypass.txt"),
	verbatim(FileMain, "main::general", "crash_printer_location",
		"this is intended to debug some annoying scenarios, and best used with the debug build",
		"crash_printer_location.txt"),
	enabled(FileMain, "main::connectivity", "disable_lan_only",
		"prevent hooking OS networking APIs and allow any external requests",
		"disable_lan_only.txt"),
	enabled(FileMain, "main::general", "disable_leaderboards_create_unknown",
		"prevent Steam_User_Stats::FindLeaderboard() from always succeeding and creating the unknown leaderboard",
		"disable_leaderboards_create_unknown.txt"),
	enabled(FileMain, "main::connectivity", "disable_lobby_creation",
		"prevent lobby creation in steam matchmaking interface",
		"disable_lobby_creation.txt"),
	enabled(FileOverlay, "overlay::general", "disable_achievement_notification",
		"disable the achievements notifications",
		"disable_overlay_achievement_notification.txt"),
	enabled(FileOverlay, "overlay::general", "disable_friend_notification",
		"disable friends invitations and messages notifications",
		"disable_overlay_friend_notification.txt"),
	enabled(FileOverlay, "overlay::general", "disable_warning_any",
		"disable any warning in the overlay",
		"disable_overlay_warning_any.txt"),
	enabled(FileOverlay, "overlay::general", "disable_warning_bad_appid",
		"disable the bad app ID warning in the overlay",
		"disable_overlay_warning_bad_appid.txt"),
	enabled(FileOverlay, "overlay::general", "disable_warning_local_save",
		"disable the local_save warning in the overlay",
		"disable_overlay_warning_local_save.txt"),
	enabled(FileMain, "main::connectivity", "download_steamhttp_requests",
		"attempt to download external HTTP(S) requests made via Steam_HTTP::SendHTTPRequest()",
		"download_steamhttp_requests.txt"),
	enabled(FileMain, "main::misc", "force_steamhttp_success",
		"force the function Steam_HTTP::SendHTTPRequest() to always succeed",
		"force_steamhttp_success.txt"),
	enabled(FileMain, "main::general", "new_app_ticket",
		"generate new app auth ticket",
		"new_app_ticket.txt"),
	enabled(FileMain, "main::general", "gc_token",
		"generate/embed GC token inside new App Ticket",
		"gc_token.txt"),
	enabled(FileMain, "main::general", "immediate_gameserver_stats",
		"synchronize user stats/achievements with game servers as soon as possible instead of caching them",
		"immediate_gameserver_stats.txt"),
	enabled(FileApp, "app::general", "is_beta_branch",
		"make the game/app think we are playing on a beta branch",
		"is_beta_branch.txt"),
	enabled(FileMain, "main::general", "matchmaking_server_details_via_source_query",
		"grab the server details for match making using an actual server query",
		"matchmaking_server_details_via_source_query.txt"),
	enabled(FileMain, "main::general", "matchmaking_server_list_actual_type",
		"use the proper type of the server list (internet, friends, etc...) when requested by the game",
		"matchmaking_server_list_actual_type.txt"),
	enabled(FileMain, "main::connectivity", "offline",
		"pretend steam is running in offline mode",
		"offline.txt"),
	enabled(FileMain, "main::connectivity", "share_leaderboards_over_network",
		"enable sharing leaderboards scores with people playing the same game on the same network",
		"share_leaderboards_over_network.txt"),
	enabled(FileMain, "main::general", "steam_deck",
		"pretend the app is running on a steam deck",
		"steam_deck.txt"),
	{
		Pattern: regexp.MustCompile(`^steam_interfaces\.txt$`),
		Kind:    KindInterfaces,
		Target:  Target{File: FileApp, Section: "app::steam_interfaces"},
	},
}

const experimentalOverlayComment = "XXX USE AT YOUR OWN RISK XXX, enable the experimental overlay, might cause crashes"
