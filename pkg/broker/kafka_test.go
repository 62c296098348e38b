package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kmsg"
)

func TestRacksFromBrokers(t *testing.T) {
	rackA := "us-east-1a"
	rackB := "us-east-1b"

	brokers := []kmsg.MetadataResponseBroker{
		{NodeID: 0, Host: "kafka-0", Port: 9092, Rack: &rackA},
		{NodeID: 1, Host: "kafka-1", Port: 9092, Rack: &rackB},
		{NodeID: 2, Host: "kafka-2", Port: 9092, Rack: nil},
	}

	racks := racksFromBrokers(brokers)
	require.Len(t, racks, 3)

	require.NotNil(t, racks[0])
	assert.Equal(t, "us-east-1a", *racks[0])
	require.NotNil(t, racks[1])
	assert.Equal(t, "us-east-1b", *racks[1])
	assert.Nil(t, racks[2])
}

func TestRacksFromBrokersEmpty(t *testing.T) {
	assert.Empty(t, racksFromBrokers(nil))
}
