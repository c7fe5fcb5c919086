package eligibilityrules

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	mongodb "cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/pkg/store/repository"
	"cashflow-router/internal/service/interfaces"
)

type EligibilityRulesRepository struct {
	repo interfaces.EligibilityRulesStoreInterface
}

func NewEligibilityRulesRepository(client *mongodb.MongoClient) *EligibilityRulesRepository {
	collection := client.Database.Collection(consts.EligibilityRuleCollection)
	repo := repository.NewMongoRepository[models.EligibilityRule](collection)
	return &EligibilityRulesRepository{repo: repo}
}

func NewEligibilityRulesRepositoryWithInterface(repo interfaces.EligibilityRulesStoreInterface) *EligibilityRulesRepository {
	return &EligibilityRulesRepository{repo: repo}
}

// UpsertRule keeps a single rule per (NBFC, loan type). A second create for the
// same pair overwrites the stored thresholds.
func (er EligibilityRulesRepository) UpsertRule(ctx context.Context, rule models.EligibilityRule) (bool, error) {
	filter := bson.M{"nbfcId": rule.NbfcID, "loanType": rule.LoanType}
	update := bson.M{
		"$set": bson.M{
			"minLoanTenure": rule.MinLoanTenure,
			"maxLoanTenure": rule.MaxLoanTenure,
			"minAmount":     rule.MinAmount,
			"maxAmount":     rule.MaxAmount,
			"minCibilScore": rule.MinCibilScore,
			"minAge":        rule.MinAge,
			"maxAge":        rule.MaxAge,
			"shouldCheck":   rule.ShouldCheck,
			"shouldAssign":  rule.ShouldAssign,
			"updatedAt":     time.Now(),
		},
		"$setOnInsert": bson.M{
			"nbfcId":    rule.NbfcID,
			"loanType":  rule.LoanType,
			"createdAt": time.Now(),
		},
	}

	result, err := er.repo.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpsertingEligibilityRule, err,
			zap.String("nbfcId", rule.NbfcID.Hex()), zap.String("loanType", rule.LoanType))
		return false, err
	}

	created := result.UpsertedCount > 0
	logger.CtxInfo(ctx, "Eligibility rule upserted",
		zap.String("nbfcId", rule.NbfcID.Hex()),
		zap.String("loanType", rule.LoanType),
		zap.Bool("created", created),
	)
	return created, nil
}

func (er EligibilityRulesRepository) GetRule(ctx context.Context, nbfcID primitive.ObjectID, loanType string) (*models.EligibilityRule, error) {
	rule, err := er.repo.FindOne(ctx, bson.M{"nbfcId": nbfcID, "loanType": loanType}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingEligibilityRules, err, zap.String("nbfcId", nbfcID.Hex()))
		return nil, err
	}
	return &rule, nil
}

func (er EligibilityRulesRepository) GetRulesByLoanType(ctx context.Context, loanType string) ([]models.EligibilityRule, error) {
	rules, err := er.repo.Find(ctx, bson.M{"loanType": loanType})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingEligibilityRules, err, zap.String("loanType", loanType))
		return nil, err
	}
	return rules, nil
}
