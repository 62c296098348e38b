package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

// Task states reported by the platform.
const (
	TaskRunning  = "TASK_RUNNING"
	TaskFinished = "TASK_FINISHED"
	TaskKilled   = "TASK_KILLED"
)

// Task is one entry of the platform task list.
type Task struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Tasks returns the service's tasks, matched by the task name prefix derived
// from the service name.
func (i *Installer) Tasks(ctx context.Context, serviceName string) ([]Task, error) {
	var all []Task
	if err := cluster.RunJSON(ctx, i.runner, &all, "task", "--json"); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	prefix := baseName(serviceName) + "-"
	var tasks []Task
	for _, t := range all {
		if strings.HasPrefix(t.Name, prefix) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// WaitForRunningTasks polls until at least count of the service's tasks are
// in TASK_RUNNING.
func (i *Installer) WaitForRunningTasks(ctx context.Context, serviceName string, count int, timeout time.Duration) error {
	if timeout == 0 {
		timeout = DefaultWaitTimeout
	}

	op := func() error {
		tasks, err := i.Tasks(ctx, serviceName)
		if err != nil {
			return err
		}

		running := 0
		for _, t := range tasks {
			if t.State == TaskRunning {
				running++
			}
		}

		if running < count {
			i.log.Debug("waiting for running tasks",
				"service", serviceName, "running", running, "expected", count)
			return fmt.Errorf("%d of %d tasks running", running, count)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = timeout
	bo.MaxInterval = 30 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("service %s never reached %d running tasks: %w", serviceName, count, err)
	}
	return nil
}

// WaitForNoTasks polls until the service has no tasks left, which is how an
// uninstall is observed to finish.
func (i *Installer) WaitForNoTasks(ctx context.Context, serviceName string, timeout time.Duration) error {
	if timeout == 0 {
		timeout = DefaultWaitTimeout
	}

	op := func() error {
		tasks, err := i.Tasks(ctx, serviceName)
		if err != nil {
			return err
		}

		remaining := 0
		for _, t := range tasks {
			if t.State == TaskRunning {
				remaining++
			}
		}

		if remaining > 0 {
			i.log.Debug("waiting for tasks to drain",
				"service", serviceName, "remaining", remaining)
			return fmt.Errorf("%d tasks still running", remaining)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = timeout
	bo.MaxInterval = 30 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("tasks for %s never drained: %w", serviceName, err)
	}
	return nil
}
