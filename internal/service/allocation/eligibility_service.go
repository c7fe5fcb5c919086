package allocation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

// EligibilityService narrows the enabled partner roster for one request using
// the per-(NBFC, loan type) rule rows, the static deny-list and today's
// hold-back percentages. Read-only and deterministic for a fixed
// configuration snapshot.
type EligibilityService struct {
	nbfcRepo       interfaces.NbfcRepositoryInterface
	rulesRepo      interfaces.EligibilityRulesRepositoryInterface
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface
	blockedNbfcs   map[string]struct{}
}

func NewEligibilityService(
	nbfcRepo interfaces.NbfcRepositoryInterface,
	rulesRepo interfaces.EligibilityRulesRepositoryInterface,
	cashFlowInputs interfaces.CashFlowInputsRepositoryInterface,
	blockedNbfcs []string,
) *EligibilityService {
	blocked := make(map[string]struct{}, len(blockedNbfcs))
	for _, id := range blockedNbfcs {
		blocked[id] = struct{}{}
	}
	return &EligibilityService{
		nbfcRepo:       nbfcRepo,
		rulesRepo:      rulesRepo,
		cashFlowInputs: cashFlowInputs,
		blockedNbfcs:   blocked,
	}
}

// TenureDays derives the loan tenure from the loan type: the payday product
// runs a fixed term, EMI products "E<N>" run N months.
func TenureDays(loanType string) (int, error) {
	if loanType == consts.LoanTypePayday {
		return consts.PaydayTenureDays, nil
	}
	if strings.HasPrefix(loanType, consts.EmiLoanTypePrefix) {
		months, err := strconv.Atoi(strings.TrimPrefix(loanType, consts.EmiLoanTypePrefix))
		if err != nil || months < 1 {
			return 0, consts.ErrInvalidLoanType
		}
		return months * consts.DaysPerEmiMonth, nil
	}
	return 0, consts.ErrInvalidLoanType
}

func (s *EligibilityService) EligibleNbfcs(ctx context.Context, req models.AllocationRequest) ([]storemodels.Nbfc, error) {
	tenure, err := TenureDays(req.LoanType)
	if err != nil {
		return nil, err
	}

	nbfcs, err := s.nbfcRepo.ListEnabledNbfcs(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.rulesRepo.GetRulesByLoanType(ctx, req.LoanType)
	if err != nil {
		return nil, err
	}
	ruleByNbfc := make(map[string]storemodels.EligibilityRule, len(rules))
	for _, rule := range rules {
		ruleByNbfc[rule.NbfcID.Hex()] = rule
	}

	today := time.Now()
	var eligible []storemodels.Nbfc
	for _, nbfc := range nbfcs {
		id := nbfc.ID.Hex()

		if _, isBlocked := s.blockedNbfcs[id]; isBlocked {
			continue
		}

		// New assignments require an assignable rule; the thresholds always
		// apply regardless of the gate flags.
		rule, hasRule := ruleByNbfc[id]
		if !hasRule || !rule.ShouldAssign {
			continue
		}
		if !ruleMatches(rule, tenure, req) {
			continue
		}

		holdCash, err := s.cashFlowInputs.ResolveHoldCash(ctx, nbfc.ID, today)
		if err != nil {
			return nil, err
		}
		// 100% hold-back fully blocks new disbursal for the day.
		if holdCash >= 100 {
			logger.CtxDebug(ctx, "NBFC excluded, full hold-back", zap.String("nbfcId", id))
			continue
		}

		eligible = append(eligible, nbfc)
	}

	return eligible, nil
}

// HonorAssignedNbfc reports whether the partner already attached to this
// request may keep it. Honoring an existing assignment runs the same threshold
// checks as routing, but is gated on the rule's check flag rather than its
// assign flag, so a partner closed to new assignments can still serve users it
// already holds.
func (s *EligibilityService) HonorAssignedNbfc(ctx context.Context, req models.AllocationRequest, nbfcID primitive.ObjectID) (*storemodels.Nbfc, error) {
	tenure, err := TenureDays(req.LoanType)
	if err != nil {
		return nil, err
	}

	if _, isBlocked := s.blockedNbfcs[nbfcID.Hex()]; isBlocked {
		return nil, nil
	}

	nbfc, err := s.nbfcRepo.GetNbfcByID(ctx, nbfcID)
	if err != nil {
		return nil, err
	}
	if nbfc == nil || !nbfc.IsEnabled {
		return nil, nil
	}

	rule, err := s.rulesRepo.GetRule(ctx, nbfcID, req.LoanType)
	if err != nil {
		return nil, err
	}
	if rule == nil || !rule.ShouldCheck || !ruleMatches(*rule, tenure, req) {
		return nil, nil
	}

	holdCash, err := s.cashFlowInputs.ResolveHoldCash(ctx, nbfcID, time.Now())
	if err != nil {
		return nil, err
	}
	if holdCash >= 100 {
		return nil, nil
	}

	return nbfc, nil
}

func ruleMatches(rule storemodels.EligibilityRule, tenureDays int, req models.AllocationRequest) bool {
	if req.CibilScore < rule.MinCibilScore {
		return false
	}
	if tenureDays < rule.MinLoanTenure || tenureDays > rule.MaxLoanTenure {
		return false
	}
	if req.Amount < rule.MinAmount || req.Amount > rule.MaxAmount {
		return false
	}
	if rule.MinAge != nil && req.Age < *rule.MinAge {
		return false
	}
	if rule.MaxAge != nil && req.Age > *rule.MaxAge {
		return false
	}
	return true
}
