//go:build integration
// +build integration

package rackawareness

import (
	"context"
	"log"
	"os"
	"os/exec"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/meshstack/kafka-acceptance/internal/config"
	"github.com/meshstack/kafka-acceptance/pkg/broker"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
	"github.com/meshstack/kafka-acceptance/pkg/faultdomain"
	"github.com/meshstack/kafka-acceptance/pkg/service"
)

// harness bundles the pieces every test in this suite needs.
type harness struct {
	cfg       *config.Config
	log       hclog.Logger
	runner    cluster.Runner
	installer *service.Installer
	zones     *faultdomain.Detector
}

var testHarness *harness

// TestMain builds the harness once. When the platform CLI is not reachable
// the harness stays nil and every test skips instead of failing.
func TestMain(m *testing.M) {
	log.Println("starting rack-awareness integration tests")

	h, err := setupHarness()
	if err != nil {
		log.Printf("harness unavailable, tests will be skipped: %v", err)
	} else {
		testHarness = h
	}

	os.Exit(m.Run())
}

func setupHarness() (*harness, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	if _, err := exec.LookPath(cfg.Cluster.CLIPath); err != nil {
		return nil, err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "rack-awareness",
		Level: hclog.Debug,
	})

	runner := cluster.New(cluster.Config{
		Path:   cfg.Cluster.CLIPath,
		Logger: logger,
	})

	installer, err := service.NewInstaller(service.InstallerConfig{
		Runner:      runner,
		PackageName: cfg.Service.PackageName,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	zones, err := faultdomain.NewDetector(faultdomain.DetectorConfig{
		Runner: runner,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &harness{
		cfg:       cfg,
		log:       logger,
		runner:    runner,
		installer: installer,
		zones:     zones,
	}, nil
}

// requireHarness skips the test when no cluster is reachable.
func requireHarness(t *testing.T) *harness {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if testHarness == nil {
		t.Skip("platform CLI not available, skipping")
	}
	return testHarness
}

// requireMinClusterVersion skips the test on clusters that predate
// fault-domain support.
func (h *harness) requireMinClusterVersion(t *testing.T, ctx context.Context) {
	t.Helper()

	min := h.cfg.Cluster.MinVersion
	if min == "" {
		return
	}

	ok, err := cluster.MinVersion(ctx, h.runner, min)
	require.NoError(t, err, "failed to determine cluster version")
	if !ok {
		t.Skipf("cluster is older than %s, skipping", min)
	}
}

// brokerClient builds a metadata client for a service instance.
func (h *harness) brokerClient(t *testing.T, serviceName string) *broker.Client {
	t.Helper()

	client, err := broker.NewClient(broker.ClientConfig{
		Runner:      h.runner,
		PackageName: h.cfg.Service.PackageName,
		ServiceName: serviceName,
		Logger:      h.log,
	})
	require.NoError(t, err)
	return client
}
