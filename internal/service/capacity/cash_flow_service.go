package capacity

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

// CashFlowService serves the daily roll-up view and registers the
// operator-supplied capacity inputs.
type CashFlowService struct {
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface
	nbfcRepo       interfaces.NbfcRepositoryInterface
}

func NewCashFlowService(
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface,
	nbfcRepo interfaces.NbfcRepositoryInterface,
) *CashFlowService {
	return &CashFlowService{
		cashFlowInputs: cashFlowInputs,
		nbfcRepo:       nbfcRepo,
	}
}

func (s *CashFlowService) GetDailyCashFlow(ctx context.Context, nbfcID string, date string) (*models.CashFlowResponse, error) {
	id, err := s.resolveNbfc(ctx, nbfcID)
	if err != nil {
		return nil, err
	}

	doc, err := s.cashFlowInputs.GetDailyCashFlow(ctx, id, date)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, consts.ErrCashFlowDataNotFound
	}

	return &models.CashFlowResponse{
		NbfcID:              nbfcID,
		Date:                doc.Date,
		PredictedCashInflow: doc.PredictedCashInflow,
		Collection:          doc.Collection,
		CarryForward:        doc.CarryForward,
		AvailableCashFlow:   doc.AvailableCashFlow,
		LoanBooked:          doc.LoanBooked,
		Variance:            doc.Variance,
	}, nil
}

func (s *CashFlowService) RegisterCapitalInflow(ctx context.Context, req models.CapitalInflowRequest) error {
	id, start, end, err := s.resolveWindow(ctx, req.NbfcID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return s.cashFlowInputs.CreateCapitalInflow(ctx, storemodels.CapitalInflow{
		NbfcID:        id,
		StartDate:     start,
		EndDate:       end,
		CapitalInflow: req.CapitalInflow,
	})
}

func (s *CashFlowService) RegisterHoldCash(ctx context.Context, req models.HoldCashRequest) error {
	id, start, end, err := s.resolveWindow(ctx, req.NbfcID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return s.cashFlowInputs.CreateHoldCash(ctx, storemodels.HoldCash{
		NbfcID:    id,
		StartDate: start,
		EndDate:   end,
		HoldCash:  req.HoldCash,
	})
}

func (s *CashFlowService) RegisterUserRatio(ctx context.Context, req models.UserRatioRequest) error {
	id, start, end, err := s.resolveWindow(ctx, req.NbfcID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return s.cashFlowInputs.CreateUserRatio(ctx, storemodels.UserRatio{
		NbfcID:        id,
		StartDate:     start,
		EndDate:       end,
		OldPercentage: req.OldPercentage,
		NewPercentage: req.NewPercentage,
	})
}

func (s *CashFlowService) resolveNbfc(ctx context.Context, nbfcID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(nbfcID)
	if err != nil {
		return primitive.NilObjectID, consts.ErrNbfcNotFound
	}
	nbfc, err := s.nbfcRepo.GetNbfcByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if nbfc == nil {
		return primitive.NilObjectID, consts.ErrNbfcNotFound
	}
	return id, nil
}

func (s *CashFlowService) resolveWindow(ctx context.Context, nbfcID, startDate, endDate string) (primitive.ObjectID, time.Time, time.Time, error) {
	id, err := s.resolveNbfc(ctx, nbfcID)
	if err != nil {
		return primitive.NilObjectID, time.Time{}, time.Time{}, err
	}

	start, err := time.Parse(consts.LoanDayFormat, startDate)
	if err != nil {
		return primitive.NilObjectID, time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(consts.LoanDayFormat, endDate)
	if err != nil {
		return primitive.NilObjectID, time.Time{}, time.Time{}, err
	}
	// End-of-day so the window is inclusive of its last date.
	end = end.Add(24*time.Hour - time.Nanosecond)

	return id, start, end, nil
}
