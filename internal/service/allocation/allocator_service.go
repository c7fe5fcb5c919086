package allocation

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

// AllocatorService picks one NBFC for a loan request: sticky for users who
// already hold a non-failed record today, otherwise lowest disbursal delay
// among partners with headroom, otherwise the least-bad overbooking. Single
// pass, no splitting of one request across partners.
type AllocatorService struct {
	eligibility interfaces.EligibilityServiceInterface
	ledger      interfaces.CapacityLedgerInterface
	loanRecords interfaces.LoanRecordsRepositoryInterface
	nbfcRepo    interfaces.NbfcRepositoryInterface
}

func NewAllocatorService(
	eligibility interfaces.EligibilityServiceInterface,
	ledger interfaces.CapacityLedgerInterface,
	loanRecords interfaces.LoanRecordsRepositoryInterface,
	nbfcRepo interfaces.NbfcRepositoryInterface,
) *AllocatorService {
	return &AllocatorService{
		eligibility: eligibility,
		ledger:      ledger,
		loanRecords: loanRecords,
		nbfcRepo:    nbfcRepo,
	}
}

type candidate struct {
	nbfc      storemodels.Nbfc
	available float64
}

func (s *AllocatorService) AllocateNbfc(ctx context.Context, req models.AllocationRequest) (*models.AllocationResponse, error) {
	segment := consts.Segment(req.UserType)
	if !segment.IsValid() {
		return nil, consts.ErrInvalidSegment
	}

	// Sticky assignment: a user with a live booking slot today stays with the
	// partner already holding their reservation.
	today := time.Now().Format(consts.LoanDayFormat)
	record, err := s.loanRecords.GetActiveRecord(ctx, req.UserID, today)
	if err != nil {
		return nil, err
	}
	if record != nil {
		nbfc, err := s.nbfcRepo.GetNbfcByID(ctx, record.NbfcID)
		if err != nil {
			return nil, err
		}
		if nbfc != nil {
			logger.CtxInfo(ctx, "Sticky assignment honoured",
				zap.Int64("userId", req.UserID), zap.String("nbfcId", nbfc.ID.Hex()))
			return &models.AllocationResponse{NbfcID: nbfc.ID.Hex(), NbfcName: nbfc.Name}, nil
		}
	}

	// An assigned-partner hint is kept when the partner can still serve the
	// request and its live capacity covers the amount; otherwise the request
	// falls through to a fresh allocation.
	if req.AssignedNbfcID != "" {
		if hinted, err := s.honorHint(ctx, req, segment); err != nil {
			return nil, err
		} else if hinted != nil {
			return hinted, nil
		}
	}

	eligible, err := s.eligibility.EligibleNbfcs(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, consts.ErrNoPartnerAvailable
	}

	var withHeadroom, overbooked []candidate
	for _, nbfc := range eligible {
		snapshot, err := s.ledger.GetAvailable(ctx, nbfc.ID.Hex())
		if err != nil {
			return nil, err
		}
		available := snapshot.Segment(segment)
		if available >= req.Amount {
			withHeadroom = append(withHeadroom, candidate{nbfc: nbfc, available: available})
		} else {
			overbooked = append(overbooked, candidate{nbfc: nbfc, available: available})
		}
	}

	if chosen := pickByDelay(withHeadroom); chosen != nil {
		return &models.AllocationResponse{NbfcID: chosen.ID.Hex(), NbfcName: chosen.Name}, nil
	}
	if chosen := pickByOverbookingRatio(overbooked, req.Amount); chosen != nil {
		logger.CtxWarn(ctx, "No partner has headroom, overbooking",
			zap.String("nbfcId", chosen.ID.Hex()), zap.Float64("amount", req.Amount))
		return &models.AllocationResponse{NbfcID: chosen.ID.Hex(), NbfcName: chosen.Name}, nil
	}

	return nil, consts.ErrNoPartnerAvailable
}

func (s *AllocatorService) honorHint(ctx context.Context, req models.AllocationRequest, segment consts.Segment) (*models.AllocationResponse, error) {
	hintID, err := primitive.ObjectIDFromHex(req.AssignedNbfcID)
	if err != nil {
		return nil, nil
	}

	nbfc, err := s.eligibility.HonorAssignedNbfc(ctx, req, hintID)
	if err != nil {
		return nil, err
	}
	if nbfc == nil {
		return nil, nil
	}

	snapshot, err := s.ledger.GetAvailable(ctx, nbfc.ID.Hex())
	if err != nil {
		return nil, err
	}
	if snapshot.Segment(segment) < req.Amount {
		return nil, nil
	}

	logger.CtxInfo(ctx, "Assigned partner hint honoured",
		zap.Int64("userId", req.UserID), zap.String("nbfcId", nbfc.ID.Hex()))
	return &models.AllocationResponse{NbfcID: nbfc.ID.Hex(), NbfcName: nbfc.Name}, nil
}

// pickByDelay prefers the lowest delay_in_disbursal; partners without a score
// are never preferred over scored ones. Ties break on ascending id so the
// choice is reproducible.
func pickByDelay(candidates []candidate) *storemodels.Nbfc {
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i].nbfc, candidates[j].nbfc
		switch {
		case a.DelayInDisbursal == nil && b.DelayInDisbursal == nil:
			return a.ID.Hex() < b.ID.Hex()
		case a.DelayInDisbursal == nil:
			return false
		case b.DelayInDisbursal == nil:
			return true
		case *a.DelayInDisbursal != *b.DelayInDisbursal:
			return *a.DelayInDisbursal < *b.DelayInDisbursal
		default:
			return a.ID.Hex() < b.ID.Hex()
		}
	})

	return &candidates[0].nbfc
}

// pickByOverbookingRatio minimizes (amount - available) / available. Partners
// at zero availability sit outside the ratio and are only chosen when nothing
// else is left.
func pickByOverbookingRatio(candidates []candidate, amount float64) *storemodels.Nbfc {
	if len(candidates) == 0 {
		return nil
	}

	var best *candidate
	bestRatio := 0.0
	for i := range candidates {
		c := &candidates[i]
		if c.available <= 0 {
			continue
		}
		ratio := (amount - c.available) / c.available
		if best == nil || ratio < bestRatio ||
			(ratio == bestRatio && c.nbfc.ID.Hex() < best.nbfc.ID.Hex()) {
			best = c
			bestRatio = ratio
		}
	}

	if best == nil {
		// Zero-availability partners sit outside the ratio and are only
		// accepted when there is exactly one candidate left.
		if len(candidates) == 1 {
			return &candidates[0].nbfc
		}
		return nil
	}

	return &best.nbfc
}
