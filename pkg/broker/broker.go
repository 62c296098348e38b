// Package broker reads broker metadata from a deployed service instance.
// The primary path goes through the service CLI; a direct Kafka protocol
// path exists for environments where the brokers are reachable.
package broker

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"

	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

// Info is the metadata document the service CLI returns for one broker.
type Info struct {
	ID        int      `mapstructure:"id"`
	Host      string   `mapstructure:"host"`
	Port      int      `mapstructure:"port"`
	Endpoints []string `mapstructure:"endpoints"`

	// Rack is the broker's fault-domain placement. Absence (nil) means the
	// service was installed without zone detection; a JSON null is treated
	// the same way.
	Rack *string `mapstructure:"rack"`

	Version   int    `mapstructure:"version"`
	JMXPort   int    `mapstructure:"jmx_port"`
	Timestamp string `mapstructure:"timestamp"`
}

// HasRack reports whether the broker advertises a non-empty rack.
func (i Info) HasRack() bool {
	return i.Rack != nil && *i.Rack != ""
}

// Client queries broker metadata through the service CLI.
type Client struct {
	runner      cluster.Runner
	packageName string
	serviceName string
	log         hclog.Logger
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Runner      cluster.Runner
	PackageName string
	ServiceName string
	Logger      hclog.Logger
}

// NewClient creates a broker metadata client for one service instance.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if cfg.PackageName == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Client{
		runner:      cfg.Runner,
		packageName: cfg.PackageName,
		serviceName: cfg.ServiceName,
		log:         cfg.Logger,
	}, nil
}

// List returns the ids of all registered brokers. The CLI has returned both
// string and numeric ids across releases, so both are accepted.
func (c *Client) List(ctx context.Context) ([]string, error) {
	var raw []interface{}
	err := cluster.ServiceJSON(ctx, c.runner, c.packageName, c.serviceName, &raw,
		"broker", "list")
	if err != nil {
		return nil, fmt.Errorf("broker list failed: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		switch id := v.(type) {
		case string:
			ids = append(ids, id)
		case float64:
			ids = append(ids, fmt.Sprintf("%d", int64(id)))
		default:
			return nil, fmt.Errorf("unexpected broker id type %T in CLI output", v)
		}
	}

	c.log.Debug("listed brokers", "service", c.serviceName, "count", len(ids))
	return ids, nil
}

// Get returns the metadata for a single broker id.
func (c *Client) Get(ctx context.Context, id string) (*Info, error) {
	var raw map[string]interface{}
	err := cluster.ServiceJSON(ctx, c.runner, c.packageName, c.serviceName, &raw,
		"broker", "get", id)
	if err != nil {
		return nil, fmt.Errorf("broker get %s failed: %w", id, err)
	}

	info, err := decodeInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("broker get %s: %w", id, err)
	}
	return info, nil
}

// decodeInfo maps the CLI's loosely typed document onto Info. Weak typing
// absorbs the id-as-string vs id-as-number drift between CLI releases while
// a JSON null rack still decodes to a nil pointer.
func decodeInfo(raw map[string]interface{}) (*Info, error) {
	var info Info
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &info,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode broker metadata: %w", err)
	}
	return &info, nil
}
