package cluster

import (
	"context"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// versionKey is the key the CLI prints for the cluster (not the CLI tool)
// version in its `--version` output.
const versionKey = "dcos.version="

// Version reports the platform version the CLI is attached to. The CLI
// prints key=value lines; the cluster version line is preferred, with a
// fallback to the first parseable value for older CLI releases.
func Version(ctx context.Context, r Runner) (*goversion.Version, error) {
	stdout, _, err := r.Run(ctx, "--version")
	if err != nil {
		return nil, err
	}

	var fallback *goversion.Version
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, versionKey); ok {
			return goversion.NewVersion(v)
		}

		if fallback == nil {
			if _, value, ok := strings.Cut(line, "="); ok {
				if v, err := goversion.NewVersion(value); err == nil {
					fallback = v
				}
			}
		}
	}

	if fallback != nil {
		return fallback, nil
	}

	return nil, fmt.Errorf("no cluster version in CLI output: %q", strings.TrimSpace(stdout))
}

// MinVersion reports whether the attached cluster is at least the given
// version. Tests use this to skip suites on clusters that predate a feature.
func MinVersion(ctx context.Context, r Runner, min string) (bool, error) {
	required, err := goversion.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("invalid minimum version %q: %w", min, err)
	}

	current, err := Version(ctx, r)
	if err != nil {
		return false, err
	}

	return current.GreaterThanOrEqual(required), nil
}
