package cli

import "strings"

// legacyHelp lists the accepted help spellings, lower case.
var legacyHelp = map[string]bool{
	"/?": true, "-?": true, "--?": true,
	"/h": true, "-h": true, "--h": true,
	"/help": true, "-help": true, "--help": true,
}

// NormalizeArgs rewrites legacy switch spellings into the flags cobra
// understands: "-revert" becomes "--revert" and every help spelling becomes
// "--help". Everything after a "--" terminator is left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		lower := strings.ToLower(arg)
		switch {
		case lower == "-revert":
			out = append(out, "--revert")
		case legacyHelp[lower]:
			out = append(out, "--help")
		default:
			out = append(out, arg)
		}
	}
	return out
}
