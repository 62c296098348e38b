package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanStatusDecode(t *testing.T) {
	var plan PlanStatus
	require.NoError(t, json.Unmarshal([]byte(planCompleteJSON), &plan))

	assert.Equal(t, "deploy", plan.Name)
	assert.True(t, plan.IsComplete())
	require.Len(t, plan.Phases, 1)
	assert.Equal(t, "broker", plan.Phases[0].Name)
	assert.Len(t, plan.Phases[0].Steps, 3)
}

func TestPlanStatusInProgress(t *testing.T) {
	var plan PlanStatus
	require.NoError(t, json.Unmarshal([]byte(planInProgressJSON), &plan))

	assert.False(t, plan.IsComplete())
	assert.Equal(t, PlanInProgress, plan.Status)
}
