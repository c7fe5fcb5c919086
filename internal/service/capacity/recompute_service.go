package capacity

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/pkg/utils/worker"
	"cashflow-router/internal/service/interfaces"
)

// RecomputeService rebuilds the capacity ledger from durable inputs:
//
//	available = (predicted_inflow + prev_day_carry_forward + capital_inflow)
//	            * (1 - hold_back/100) * segment_ratio - booked_today(segment)
//
// Booked totals come from loan records, not from the cache, so incremental
// drift never compounds. A failing NBFC keeps its last good snapshot.
type RecomputeService struct {
	nbfcRepo       interfaces.NbfcRepositoryInterface
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface
	projections    interfaces.ProjectionsRepositoryInterface
	loanRecords    interfaces.LoanRecordsRepositoryInterface
	ledger         interfaces.CapacityLedgerInterface
	pool           *worker.WorkerPool
	defaultOldPct  float64
}

func NewRecomputeService(
	nbfcRepo interfaces.NbfcRepositoryInterface,
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface,
	projections interfaces.ProjectionsRepositoryInterface,
	loanRecords interfaces.LoanRecordsRepositoryInterface,
	ledger interfaces.CapacityLedgerInterface,
	pool *worker.WorkerPool,
	defaultOldPct float64,
) *RecomputeService {
	if defaultOldPct < 0 || defaultOldPct > 100 {
		defaultOldPct = 50
	}
	return &RecomputeService{
		nbfcRepo:       nbfcRepo,
		cashFlowInputs: cashFlowInputs,
		projections:    projections,
		loanRecords:    loanRecords,
		ledger:         ledger,
		pool:           pool,
		defaultOldPct:  defaultOldPct,
	}
}

func (s *RecomputeService) RecomputeAll(ctx context.Context) error {
	nbfcs, err := s.nbfcRepo.ListEnabledNbfcs(ctx)
	if err != nil {
		logger.CtxError(ctx, log_messages.RecomputeCycleSkipped, err)
		return err
	}

	now := time.Now()
	var wg sync.WaitGroup
	for _, nbfc := range nbfcs {
		nbfcID := nbfc.ID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := s.RecomputeNbfc(ctx, nbfcID, now); err != nil {
				logger.CtxError(ctx, log_messages.RecomputeCycleSkipped, err, zap.String("nbfcId", nbfcID.Hex()))
			}
		}
		if s.pool != nil {
			s.pool.Submit(task)
		} else {
			task()
		}
	}
	wg.Wait()

	logger.CtxInfo(ctx, "Capacity recompute cycle finished", zap.Int("nbfcs", len(nbfcs)))
	return nil
}

func (s *RecomputeService) RecomputeNbfc(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) error {
	day := date.Format(consts.LoanDayFormat)

	predicted, err := s.projections.SumCollectionsOn(ctx, nbfcID, date)
	if err != nil {
		return err
	}

	carryForward := 0.0
	prevDay := date.AddDate(0, 0, -1).Format(consts.LoanDayFormat)
	prevCashFlow, err := s.cashFlowInputs.GetDailyCashFlow(ctx, nbfcID, prevDay)
	if err != nil {
		return err
	}
	if prevCashFlow != nil {
		carryForward = prevCashFlow.CarryForward
	}

	capitalInflow, err := s.cashFlowInputs.ResolveCapitalInflow(ctx, nbfcID, date)
	if err != nil {
		return err
	}
	holdCash, err := s.cashFlowInputs.ResolveHoldCash(ctx, nbfcID, date)
	if err != nil {
		return err
	}

	oldPct := s.defaultOldPct
	newPct := 100 - s.defaultOldPct
	ratio, err := s.cashFlowInputs.ResolveUserRatio(ctx, nbfcID, date)
	if err != nil {
		return err
	}
	if ratio != nil {
		oldPct = ratio.OldPercentage
		newPct = ratio.NewPercentage
	}

	booked, err := s.loanRecords.BookedTotals(ctx, nbfcID, day)
	if err != nil {
		return err
	}

	gross := (predicted + carryForward + capitalInflow) * (1 - holdCash/100)
	// 100% hold-back zeroes capacity outright, whatever the formula says.
	if holdCash >= 100 {
		gross = 0
	}

	available := models.CapacitySnapshot{
		Old: gross*oldPct/100 - booked.Old,
		New: gross*newPct/100 - booked.New,
	}
	available.Total = available.Old + available.New

	if err := s.ledger.ReplaceAvailable(ctx, nbfcID.Hex(), available); err != nil {
		return err
	}
	if err := s.ledger.ReplaceBooked(ctx, nbfcID.Hex(), booked); err != nil {
		return err
	}

	dailyCashFlow := models.DailyCashFlow{
		NbfcID:              nbfcID,
		Date:                day,
		PredictedCashInflow: predicted,
		CarryForward:        available.Total - booked.Total,
		AvailableCashFlow:   available.Total,
		LoanBooked:          booked.Total,
	}
	existing, err := s.cashFlowInputs.GetDailyCashFlow(ctx, nbfcID, day)
	if err != nil {
		return err
	}
	if existing != nil {
		dailyCashFlow.Collection = existing.Collection
	}
	if predicted > 0 {
		dailyCashFlow.Variance = (dailyCashFlow.Collection - predicted) / predicted * 100
	}
	if err := s.cashFlowInputs.UpsertDailyCashFlow(ctx, dailyCashFlow); err != nil {
		return err
	}

	logger.CtxDebug(ctx, "NBFC capacity recomputed",
		zap.String("nbfcId", nbfcID.Hex()),
		zap.Float64("available", available.Total),
		zap.Float64("booked", booked.Total),
	)
	return nil
}
