// Package flagx lets several independent flag sets share one os.Args.
//
// Each consumer keeps only the arguments it understands (FilterArgs) and parses
// them with its own flag.FlagSet, so unknown flags of other consumers never
// trigger "flag provided but not defined" errors.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is listed in known, together
// with their values. Both "-f value" and "-f=value" forms are recognized; a
// value is only consumed when it does not start with '-'.
func FilterArgs(args []string, known []string) []string {
	names := make(map[string]struct{}, len(known))
	for _, k := range known {
		names[k] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, keep := names[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := names[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFile returns the JSON config path given with -c or -config, or "".
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
