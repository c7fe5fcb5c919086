package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/store/models"
)

type EligibilityRulesRepositoryInterface interface {
	// UpsertRule creates the rule, or updates the existing one for the same
	// NBFC and loan type. Returns true when a new rule was created.
	UpsertRule(ctx context.Context, rule models.EligibilityRule) (bool, error)
	GetRule(ctx context.Context, nbfcID primitive.ObjectID, loanType string) (*models.EligibilityRule, error)
	GetRulesByLoanType(ctx context.Context, loanType string) ([]models.EligibilityRule, error)
}

type EligibilityRulesStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.EligibilityRule, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EligibilityRule, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}
