package scheduler

import (
	"context"
	"log"
	"time"

	"oficina_pro/internal/usecase"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/robfig/cron/v3"
)

// sweepSpec fires the daily arrears sweep at 09:00.
const sweepSpec = "0 9 * * *"

// ArrearsScheduler runs the PENDENTE -> ATRASADO promotion for every tenant
// once a day. The same rule also runs lazily on order listing; the scheduler
// only exists so quiet tenants still age while nobody is logged in.

type ArrearsScheduler struct {
	billing  usecase.IBillingUseCase
	userRepo interfaces.IUserRepository
	cron     *cron.Cron
}

func NewArrearsScheduler(billing usecase.IBillingUseCase, userRepo interfaces.IUserRepository) *ArrearsScheduler {
	return &ArrearsScheduler{
		billing:  billing,
		userRepo: userRepo,
		cron:     cron.New(),
	}
}

func (s *ArrearsScheduler) Start() error {
	if _, err := s.cron.AddFunc(sweepSpec, s.RunSweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[billing][scheduler] arrears sweep scheduled spec=%q", sweepSpec)
	return nil
}

func (s *ArrearsScheduler) Stop() {
	s.cron.Stop()
}

// RunSweep promotes overdue orders across all tenants. Exported so operators
// can trigger it outside the cron window.
func (s *ArrearsScheduler) RunSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tenants, err := s.userRepo.ListUsernames(ctx)
	if err != nil {
		log.Printf("[billing][scheduler] tenant listing failed err=%v", err)
		return
	}

	total := 0
	for _, tenant := range tenants {
		promoted, err := s.billing.SweepOverdue(ctx, tenant)
		if err != nil {
			log.Printf("[billing][scheduler] sweep failed tenant=%s err=%v", tenant, err)
			continue
		}
		total += promoted
	}
	log.Printf("[billing][scheduler] sweep done tenants=%d promoted=%d", len(tenants), total)
}
