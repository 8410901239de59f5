package cargo

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LocateWorkspace asks cargo for the workspace root of the current (or
// manifest-selected) project. The returned path is the directory
// containing the workspace Cargo.toml, still unresolved — callers
// canonicalize before using it as an identity.
func LocateWorkspace(bin, manifestPath string) (string, error) {
	cli := New(bin).Args("locate-project", "--workspace", "--message-format=plain")
	if manifestPath != "" {
		cli.Args("--manifest-path", manifestPath)
	}

	out, err := cli.StdoutOutput()
	if err != nil {
		return "", err
	}

	output := string(out)
	if !strings.HasSuffix(output, "\n") {
		return "", fmt.Errorf("`%s` produced output not terminated with a newline: %s", cli, output)
	}
	manifest := strings.TrimSuffix(output, "\n")
	if filepath.Base(manifest) != "Cargo.toml" {
		return "", fmt.Errorf("`%s` output %s doesn't end with Cargo.toml", cli, manifest)
	}
	return filepath.Dir(manifest), nil
}
