// Package faultdomain inspects the fault domains (regions and zones) the
// cluster's agents advertise. A zone groups hosts sharing a failure
// boundary, such as a cloud availability zone.
package faultdomain

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

// Zone is a fault-domain zone identifier, e.g. "us-east-1a".
type Zone string

// zonePattern matches cloud zone identifiers: lowercase alphanumeric
// segments separated by single dashes.
var zonePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks that the zone identifier is well formed. It does not check
// that the zone exists in any particular cluster.
func (z Zone) Validate() error {
	return validation.Validate(string(z),
		validation.Required,
		validation.Length(1, 64),
		validation.Match(zonePattern),
	)
}

func (z Zone) String() string {
	return string(z)
}

// node is the subset of the platform's node list document the detector
// reads. Agents without a configured fault domain omit the domain block.
type node struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Domain *struct {
		FaultDomain *struct {
			Region struct {
				Name string `json:"name"`
			} `json:"region"`
			Zone struct {
				Name string `json:"name"`
			} `json:"zone"`
		} `json:"fault_domain"`
	} `json:"domain"`
}

// Detector discovers the zones advertised by the cluster's agents.
type Detector struct {
	runner cluster.Runner
	log    hclog.Logger
}

// DetectorConfig configures a Detector.
type DetectorConfig struct {
	Runner cluster.Runner
	Logger hclog.Logger
}

// NewDetector creates a zone detector backed by the platform CLI.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Detector{
		runner: cfg.Runner,
		log:    cfg.Logger,
	}, nil
}

// Zones returns the sorted set of distinct zone names advertised by the
// cluster's agents. Agents without a fault domain are skipped.
func (d *Detector) Zones(ctx context.Context) ([]Zone, error) {
	var nodes []node
	if err := cluster.RunJSON(ctx, d.runner, &nodes, "node", "--json"); err != nil {
		return nil, fmt.Errorf("failed to list cluster nodes: %w", err)
	}

	seen := make(map[Zone]struct{})
	for _, n := range nodes {
		if n.Domain == nil || n.Domain.FaultDomain == nil {
			continue
		}
		name := n.Domain.FaultDomain.Zone.Name
		if name == "" {
			continue
		}
		seen[Zone(name)] = struct{}{}
	}

	zones := make([]Zone, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })

	d.log.Debug("detected cluster zones", "count", len(zones))
	return zones, nil
}

// IsValidZone reports whether the given identifier is a well-formed zone
// that at least one agent in the cluster advertises. Malformed identifiers
// are rejected without querying the cluster.
func (d *Detector) IsValidZone(ctx context.Context, zone string) (bool, error) {
	z := Zone(zone)
	if err := z.Validate(); err != nil {
		return false, nil
	}

	zones, err := d.Zones(ctx)
	if err != nil {
		return false, err
	}

	for _, candidate := range zones {
		if candidate == z {
			return true, nil
		}
	}
	return false, nil
}
