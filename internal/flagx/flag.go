// Package flagx lets several components parse their own subset of the
// command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments that belong to the given flags, in their
// original order. Flags listed in valued take a value, either as the next
// argument ("-d dsn") or inline ("-d=dsn"); flags listed in switches are
// booleans and never consume the following argument.
func FilterArgs(args []string, valued []string, switches ...string) []string {
	withValue := make(map[string]struct{}, len(valued))
	for _, f := range valued {
		withValue[f] = struct{}{}
	}
	boolean := make(map[string]struct{}, len(switches))
	for _, f := range switches {
		boolean[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := withValue[name]; ok {
				filtered = append(filtered, arg)
			} else if _, ok := boolean[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := boolean[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := withValue[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFile extracts the path given with -c or -config. It returns an
// empty string when neither is present; the last occurrence wins.
func ConfigFile(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
