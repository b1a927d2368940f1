//go:build unit

package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/JulianHBuecher/ev-server/internal/infra/locking"
	"github.com/JulianHBuecher/ev-server/internal/infra/repository"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/scheduler"
	commandsmock "github.com/JulianHBuecher/ev-server/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// The concrete repository must satisfy the engine port.
var _ scheduler.TenantRepository = (*repository.TenantRepository)(nil)

type stubTenants struct {
	tenants []repository.Tenant
	err     error
}

func (s *stubTenants) ListActive(_ context.Context) ([]repository.Tenant, error) {
	return s.tenants, s.err
}

type recordingTask struct {
	name string
	err  error
	runs []uuid.UUID
}

func (t *recordingTask) Name() string { return t.name }

func (t *recordingTask) Run(_ context.Context, tenantID uuid.UUID) error {
	t.runs = append(t.runs, tenantID)
	return t.err
}

func TestEngineRunOnce(t *testing.T) {
	tenantA := repository.Tenant{ID: uuid.New(), Name: "a", ReservationEnabled: true}
	tenantB := repository.Tenant{ID: uuid.New(), Name: "b", ReservationEnabled: true}
	disabled := repository.Tenant{ID: uuid.New(), Name: "c", ReservationEnabled: false}

	t.Run("runs every task for every reservation-enabled tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locks := commandsmock.NewMockLockService(ctrl)
		locks.EXPECT().AcquireExclusive(gomock.Any(), gomock.Any(), "reservation", gomock.Any()).
			Return(&locking.Lock{}, true, nil).Times(4)
		locks.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil).Times(4)

		task1 := &recordingTask{name: "one"}
		task2 := &recordingTask{name: "two"}
		tenants := &stubTenants{tenants: []repository.Tenant{tenantA, disabled, tenantB}}

		engine := scheduler.NewEngine(tenants, locks, time.Minute, task1, task2)
		engine.RunOnce(context.Background())

		assert.Equal(t, []uuid.UUID{tenantA.ID, tenantB.ID}, task1.runs)
		assert.Equal(t, []uuid.UUID{tenantA.ID, tenantB.ID}, task2.runs)
	})

	t.Run("skips silently when the lock is held elsewhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locks := commandsmock.NewMockLockService(ctrl)
		locks.EXPECT().AcquireExclusive(gomock.Any(), tenantA.ID, "reservation", "one").
			Return(nil, false, nil)
		// No Release when nothing was acquired.

		task := &recordingTask{name: "one"}
		tenants := &stubTenants{tenants: []repository.Tenant{tenantA}}

		engine := scheduler.NewEngine(tenants, locks, time.Minute, task)
		engine.RunOnce(context.Background())

		assert.Empty(t, task.runs)
	})

	t.Run("lock acquisition failure skips the task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locks := commandsmock.NewMockLockService(ctrl)
		locks.EXPECT().AcquireExclusive(gomock.Any(), tenantA.ID, "reservation", "one").
			Return(nil, false, errs.New("redis down"))

		task := &recordingTask{name: "one"}
		tenants := &stubTenants{tenants: []repository.Tenant{tenantA}}

		engine := scheduler.NewEngine(tenants, locks, time.Minute, task)
		engine.RunOnce(context.Background())

		assert.Empty(t, task.runs)
	})

	t.Run("one task failing never stops the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locks := commandsmock.NewMockLockService(ctrl)
		locks.EXPECT().AcquireExclusive(gomock.Any(), gomock.Any(), "reservation", gomock.Any()).
			Return(&locking.Lock{}, true, nil).Times(4)
		locks.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil).Times(4)

		failing := &recordingTask{name: "failing", err: errs.New("sweep broke")}
		healthy := &recordingTask{name: "healthy"}
		tenants := &stubTenants{tenants: []repository.Tenant{tenantA, tenantB}}

		engine := scheduler.NewEngine(tenants, locks, time.Minute, failing, healthy)
		engine.RunOnce(context.Background())

		assert.Equal(t, []uuid.UUID{tenantA.ID, tenantB.ID}, failing.runs)
		assert.Equal(t, []uuid.UUID{tenantA.ID, tenantB.ID}, healthy.runs)
	})

	t.Run("tenant listing failure aborts the pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locks := commandsmock.NewMockLockService(ctrl)

		task := &recordingTask{name: "one"}
		tenants := &stubTenants{err: errs.New("db down")}

		engine := scheduler.NewEngine(tenants, locks, time.Minute, task)
		engine.RunOnce(context.Background())

		assert.Empty(t, task.runs)
	})
}
