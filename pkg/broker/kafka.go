package broker

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// MetadataRacks issues a Kafka Metadata request against the given seed
// brokers and returns each broker's advertised rack by node id. A nil rack
// means the broker was started without one. This bypasses the service CLI
// and is only usable where the harness can reach the brokers directly.
func MetadataRacks(ctx context.Context, seeds []string) (map[int32]*string, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	defer client.Close()

	req := kmsg.NewPtrMetadataRequest()
	resp, err := req.RequestWith(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}

	return racksFromBrokers(resp.Brokers), nil
}

// racksFromBrokers extracts the node id -> rack mapping from a metadata
// response.
func racksFromBrokers(brokers []kmsg.MetadataResponseBroker) map[int32]*string {
	racks := make(map[int32]*string, len(brokers))
	for _, b := range brokers {
		racks[b.NodeID] = b.Rack
	}
	return racks
}
