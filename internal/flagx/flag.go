// Package flagx lets several configuration layers share one command line:
// each layer filters the arguments down to the flags it owns before parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags, together with
// their values.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A following
// argument is taken as the value only when it does not itself start with
// '-'. Boolean flags listed in boolFlags never consume a following value.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		isBool[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if _, ok := isBool[arg]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFilePath extracts the JSON config path given with -c or -config.
// Other arguments are ignored. Returns "" when neither flag is present.
func ConfigFilePath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
