// Package service drives the install/uninstall lifecycle of a managed
// service package. The platform performs the actual orchestration; this
// package submits requests through the CLI and polls until they settle.
package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Options is the package options document submitted with an install. Values
// mirror the package's options schema, so the document stays loosely typed.
type Options map[string]interface{}

// DefaultOptions returns the baseline options for installing the service
// under a specific instance name with a broker count.
func DefaultOptions(serviceName string, brokerCount int) Options {
	return Options{
		"service": map[string]interface{}{
			"name": serviceName,
		},
		"brokers": map[string]interface{}{
			"count": brokerCount,
		},
	}
}

// Merge returns a new document with overlay deep-merged onto o. Nested
// objects merge key by key; on conflicts the overlay wins.
func (o Options) Merge(overlay Options) Options {
	return Options(mergeMaps(o, overlay))
}

func mergeMaps(base, overlay map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}

	for k, v := range overlay {
		overlayMap, overlayIsMap := v.(map[string]interface{})
		baseMap, baseIsMap := merged[k].(map[string]interface{})
		if overlayIsMap && baseIsMap {
			merged[k] = mergeMaps(baseMap, overlayMap)
			continue
		}
		merged[k] = v
	}

	return merged
}

// WriteFile marshals the document to a temporary JSON file and returns its
// path. The caller removes the file once the install command has consumed it.
func (o Options) WriteFile(fs afero.Fs) (string, error) {
	f, err := afero.TempFile(fs, "", "service-options-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create options file: %w", err)
	}
	defer f.Close()

	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write options file: %w", err)
	}

	return f.Name(), nil
}

// FolderedName returns the namespaced service instance name used to support
// multiple concurrent installs of the same package.
func FolderedName(name string) string {
	return "/test/integration/" + strings.TrimPrefix(name, "/")
}

// RandomizedName appends a short unique suffix so parallel runs of the same
// suite do not collide on an instance name.
func RandomizedName(name string) string {
	return name + "-" + uuid.NewString()[:8]
}

// baseName returns the last path segment of a (possibly foldered) service
// name, which is the prefix the service's tasks are named with.
func baseName(serviceName string) string {
	trimmed := strings.TrimSuffix(serviceName, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
