package legacy

import (
	"regexp"
	"strings"
)

// InterfacePattern classifies one interface version string.
type InterfacePattern struct {
	Prefix *regexp.Regexp
	Name   string
}

// interfacePatterns is evaluated top to bottom and the first match wins, so
// every name must come after any longer name it is a prefix of
// (SteamGameServerStats before SteamGameServer).
var interfacePatterns = []InterfacePattern{
	{regexp.MustCompile(`^SteamClient`), "client"},

	{regexp.MustCompile(`^SteamGameServerStats`), "gameserver_stats"},
	{regexp.MustCompile(`^SteamGameServer`), "gameserver"},

	{regexp.MustCompile(`^SteamMatchMakingServers`), "matchmaking_servers"},
	{regexp.MustCompile(`^SteamMatchMaking`), "matchmaking"},

	{regexp.MustCompile(`^SteamUser`), "user"},
	{regexp.MustCompile(`^SteamFriends`), "friends"},
	{regexp.MustCompile(`^SteamUtils`), "utils"},
	{regexp.MustCompile(`^STEAMUSERSTATS_INTERFACE_VERSION`), "user_stats"},
	{regexp.MustCompile(`^STEAMAPPS_INTERFACE_VERSION`), "apps"},
	{regexp.MustCompile(`^SteamNetworking`), "networking"},
	{regexp.MustCompile(`^STEAMREMOTESTORAGE_INTERFACE_VERSION`), "remote_storage"},
	{regexp.MustCompile(`^STEAMSCREENSHOTS_INTERFACE_VERSION`), "screenshots"},
	{regexp.MustCompile(`^STEAMHTTP_INTERFACE_VERSION`), "http"},
	{regexp.MustCompile(`^STEAMUNIFIEDMESSAGES_INTERFACE_VERSION`), "unified_messages"},

	{regexp.MustCompile(`^STEAMCONTROLLER_INTERFACE_VERSION`), "controller"},
	{regexp.MustCompile(`^SteamController`), "controller"},

	{regexp.MustCompile(`^STEAMUGC_INTERFACE_VERSION`), "ugc"},
	{regexp.MustCompile(`^STEAMAPPLIST_INTERFACE_VERSION`), "applist"},
	{regexp.MustCompile(`^STEAMMUSIC_INTERFACE_VERSION`), "music"},
	{regexp.MustCompile(`^STEAMMUSICREMOTE_INTERFACE_VERSION`), "music_remote"},
	{regexp.MustCompile(`^STEAMHTMLSURFACE_INTERFACE_VERSION`), "html_surface"},
	{regexp.MustCompile(`^STEAMINVENTORY_INTERFACE`), "inventory"},
	{regexp.MustCompile(`^STEAMVIDEO_INTERFACE`), "video"},
	{regexp.MustCompile(`^SteamMasterServerUpdater`), "masterserver_updater"},
}

// ClassifyInterface returns the logical name of an interface version string.
func ClassifyInterface(line string) (string, bool) {
	for _, p := range interfacePatterns {
		if p.Prefix.MatchString(line) {
			return p.Name, true
		}
	}
	return "", false
}

var interfaceBlanks = strings.NewReplacer(" ", "", "\t", "", "\r", "", "\n", "")

// cleanInterfaceLine removes every blank from a line of the interfaces
// listing; version strings never contain any.
func cleanInterfaceLine(line string) string {
	return interfaceBlanks.Replace(line)
}
