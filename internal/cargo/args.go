package cargo

import (
	"fmt"
	"strings"
)

// Invocation is a parsed cargo passthrough invocation. Args carries the
// arguments destined for cargo; targo only inspects them.
type Invocation struct {
	Args         []string
	ManifestPath string
}

// ParseArgs scans a cargo argument list, extracting --manifest-path.
// The flag may appear as `--manifest-path <path>` or
// `--manifest-path=<path>`, at most once. A single leading `--`
// separates targo's arguments from cargo's (the `targo wrap -- build`
// form) and is stripped; everything after it is passed through to
// cargo verbatim.
func ParseArgs(args []string) (*Invocation, error) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	inv := &Invocation{Args: args}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var path string
		switch {
		case arg == "--manifest-path":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("argument '--manifest-path <PATH>' requires a value")
			}
			i++
			path = args[i]
		case strings.HasPrefix(arg, "--manifest-path="):
			path = strings.TrimPrefix(arg, "--manifest-path=")
		default:
			continue
		}
		if inv.ManifestPath != "" {
			return nil, fmt.Errorf("argument '--manifest-path <PATH>' was provided more than once, but cannot be used multiple times")
		}
		inv.ManifestPath = path
	}
	return inv, nil
}
