package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JulianHBuecher/ev-server/internal/infra/repository"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
)

// Task is one tenant-scoped reconciliation sweep.
type Task interface {
	Name() string
	Run(ctx context.Context, tenantID uuid.UUID) error
}

type TenantRepository interface {
	ListActive(ctx context.Context) ([]repository.Tenant, error)
}

// Engine drives the sweeps on a fixed interval. Each (tenant, task) pass
// runs under a tenant-scoped exclusive lock so overlapping instances skip
// instead of double-processing. One tenant's failure never stops the rest.
type Engine struct {
	tenants  TenantRepository
	locks    commands.LockService
	tasks    []Task
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewEngine(tenants TenantRepository, locks commands.LockService, interval time.Duration, tasks ...Task) *Engine {
	return &Engine{
		tenants:  tenants,
		locks:    locks,
		tasks:    tasks,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (e *Engine) Start(ctx context.Context) {
	go func() {
		defer close(e.done)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.RunOnce(ctx)
			case <-e.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (e *Engine) Stop() {
	close(e.stop)
	<-e.done
}

// RunOnce executes one full pass over all reservation-enabled tenants.
func (e *Engine) RunOnce(ctx context.Context) {
	tenants, err := e.tenants.ListActive(ctx)
	if err != nil {
		slog.Error("failed to list tenants for reconciliation", "error", err)
		return
	}

	for _, tenant := range tenants {
		if !tenant.ReservationEnabled {
			continue
		}
		for _, task := range e.tasks {
			e.runTask(ctx, tenant.ID, task)
		}
	}
}

func (e *Engine) runTask(ctx context.Context, tenantID uuid.UUID, task Task) {
	lock, acquired, err := e.locks.AcquireExclusive(ctx, tenantID, "reservation", task.Name())
	if err != nil {
		slog.Error("failed to acquire sweep lock",
			"tenant_id", tenantID, "task", task.Name(), "error", err)
		return
	}
	if !acquired {
		// Another instance is already sweeping this tenant.
		return
	}
	defer func() {
		if err := e.locks.Release(ctx, lock); err != nil {
			slog.Warn("failed to release sweep lock",
				"tenant_id", tenantID, "task", task.Name(), "error", err)
		}
	}()

	if err := task.Run(ctx, tenantID); err != nil {
		slog.Error("reconciliation sweep failed",
			"tenant_id", tenantID, "task", task.Name(), "error", err)
	}
}
