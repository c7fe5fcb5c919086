package capacity

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

// Projections cover dpd offsets from a week early to 45 days late.
const (
	dpdRangeStart = -7
	dpdRangeEnd   = 45
)

// ProjectionService turns upstream collection efficiency curves and due
// amounts into per-date projected collection amounts. The weighted average
// collection efficiency for a dpd is the sum of the new and old segment
// efficiencies for that offset.
type ProjectionService struct {
	prediction  interfaces.PredictionClientInterface
	nbfcRepo    interfaces.NbfcRepositoryInterface
	projections interfaces.ProjectionsRepositoryInterface
}

func NewProjectionService(
	prediction interfaces.PredictionClientInterface,
	nbfcRepo interfaces.NbfcRepositoryInterface,
	projections interfaces.ProjectionsRepositoryInterface,
) *ProjectionService {
	return &ProjectionService{
		prediction:  prediction,
		nbfcRepo:    nbfcRepo,
		projections: projections,
	}
}

func (s *ProjectionService) IngestProjections(ctx context.Context) error {
	poll, err := s.prediction.GetCollectionPoll(ctx)
	if err != nil {
		logger.CtxError(ctx, log_messages.ProjectionCycleSkipped, err)
		return err
	}
	if poll == nil || len(poll.Data) == 0 {
		logger.CtxWarn(ctx, log_messages.ProjectionCycleSkipped, zap.String("reason", "empty collection poll"))
		return consts.ErrMalformedPredictionData
	}

	// Loans disbursed today fall due one month out, less a day.
	dueDate := time.Now().AddDate(0, 1, -1)
	dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	dueDayKey := strconv.Itoa(dueDate.Day())

	dueAmounts, err := s.prediction.GetDueAmounts(ctx, dueDate.Format(consts.LoanDayFormat))
	if err != nil {
		logger.CtxError(ctx, log_messages.ProjectionCycleSkipped, err)
		return err
	}
	if dueAmounts == nil || dueAmounts.Data == nil {
		logger.CtxWarn(ctx, log_messages.ProjectionCycleSkipped, zap.String("reason", "empty due amounts"))
		return consts.ErrMalformedPredictionData
	}

	ingested := 0
	for nbfcName, efficienciesByDay := range poll.Data {
		nbfc, err := s.nbfcRepo.GetNbfcByName(ctx, nbfcName)
		if err != nil {
			return err
		}
		if nbfc == nil {
			logger.CtxWarn(ctx, "Collection poll names unknown NBFC, skipping", zap.String("name", nbfcName))
			continue
		}

		efficiencies, ok := efficienciesByDay[dueDayKey]
		if !ok {
			continue
		}
		dueAmount := dueAmounts.Data[nbfcName]

		for dpd := dpdRangeStart; dpd <= dpdRangeEnd; dpd++ {
			dpdKey := strconv.Itoa(dpd)
			wace := efficiencies.New[dpdKey] + efficiencies.Old[dpdKey]

			doc := models.ProjectionCollectionData{
				NbfcID:         nbfc.ID,
				DueDate:        dueDay,
				CollectionDate: dueDay.AddDate(0, 0, dpd),
				Amount:         wace * dueAmount,
			}
			if err := s.projections.UpsertProjection(ctx, doc); err != nil {
				return err
			}
			ingested++
		}
	}

	logger.CtxInfo(ctx, "Projection ingestion finished",
		zap.String("dueDate", dueDay.Format(consts.LoanDayFormat)), zap.Int("projections", ingested))
	return nil
}
