package jobs

import (
	"context"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
)

// BlacklistOverdueGuarantors sweeps the active loans and blacklists the
// guarantors of every loan past its term with unpaid interest months.
func (jr *JobRunner) BlacklistOverdueGuarantors() {
	jr.runWithRecovery("BlacklistOverdueGuarantors", func() {
		ctx := context.Background()

		flagged, err := jr.services.Loan.BlacklistOverdueGuarantors(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to sweep overdue loan guarantors", "error", err)
			return
		}

		logger.Info("Overdue guarantor sweep finished", "members_flagged", flagged)
	})
}
