package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

// Plan statuses reported by the scheduler.
const (
	PlanComplete   = "COMPLETE"
	PlanInProgress = "IN_PROGRESS"
	PlanPending    = "PENDING"
	PlanWaiting    = "WAITING"
	PlanError      = "ERROR"
)

// PlanStatus is the scheduler's view of a deployment plan.
type PlanStatus struct {
	Name   string  `json:"name"`
	Status string  `json:"status"`
	Phases []Phase `json:"phases"`
}

// Phase is one phase of a plan.
type Phase struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Steps  []Step `json:"steps"`
}

// Step is one step of a phase, typically one task launch.
type Step struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// IsComplete reports whether the plan has fully converged.
func (p PlanStatus) IsComplete() bool {
	return p.Status == PlanComplete
}

// DeployPlan fetches the current deploy plan through the service CLI.
func (i *Installer) DeployPlan(ctx context.Context, serviceName string) (*PlanStatus, error) {
	var plan PlanStatus
	err := cluster.ServiceJSON(ctx, i.runner, i.packageName, serviceName, &plan,
		"plan", "status", "deploy", "--json")
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// WaitForDeployComplete polls the deploy plan until it reaches COMPLETE.
// Transient CLI failures are retried (the scheduler may still be starting);
// an ERROR plan fails immediately.
func (i *Installer) WaitForDeployComplete(ctx context.Context, serviceName string, timeout time.Duration) error {
	if timeout == 0 {
		timeout = DefaultWaitTimeout
	}

	op := func() error {
		plan, err := i.DeployPlan(ctx, serviceName)
		if err != nil {
			i.log.Debug("deploy plan not available yet", "service", serviceName, "error", err)
			return err
		}

		switch plan.Status {
		case PlanComplete:
			i.log.Info("deploy plan complete", "service", serviceName)
			return nil
		case PlanError:
			return backoff.Permanent(fmt.Errorf("deploy plan for %s failed", serviceName))
		default:
			i.log.Debug("waiting on deploy plan", "service", serviceName, "status", plan.Status)
			return fmt.Errorf("deploy plan is %s", plan.Status)
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = timeout
	bo.MaxInterval = 30 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("service %s did not finish deploying: %w", serviceName, err)
	}
	return nil
}
