package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"cashflow-router/internal/app/handlers"
	"cashflow-router/internal/app/middleware"
	"cashflow-router/internal/pkg/config"
	"cashflow-router/internal/service/interfaces"
)

// Dependencies carries the services and repositories the HTTP surface needs.
// They are built once in runtime and shared with the background jobs.
type Dependencies struct {
	Allocator interfaces.AllocatorServiceInterface
	Lifecycle interfaces.LifecycleServiceInterface
	CashFlow  interfaces.CashFlowServiceInterface
	NbfcRepo  interfaces.NbfcRepositoryInterface
	RulesRepo interfaces.EligibilityRulesRepositoryInterface
}

func SetupRouter(cfg *config.AppConfig, deps Dependencies) (*gin.Engine, error) {
	if err := handlers.RegisterCustomValidators(); err != nil {
		return nil, err
	}

	r := gin.Default()
	meter := otel.Meter(cfg.Otel.ServiceName)
	r.Use(otelgin.Middleware(cfg.Otel.ServiceName))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	healthCheckHandler := handlers.NewHealthCheckHandler()
	allocationHandler := handlers.NewAllocationHandler(deps.Allocator)
	transitionHandler := handlers.NewTransitionHandler(deps.Lifecycle)
	nbfcHandler := handlers.NewNbfcHandler(deps.NbfcRepo)
	eligibilityRuleHandler := handlers.NewEligibilityRuleHandler(deps.RulesRepo, deps.NbfcRepo)
	cashFlowHandler := handlers.NewCashFlowHandler(deps.CashFlow)

	r.GET("/CashFlowRouter/HealthCheck", healthCheckHandler.HealthCheck)

	r.POST("/CashFlowRouter/Allocation", allocationHandler.Allocate)
	r.POST("/CashFlowRouter/LoanLifecycle", transitionHandler.Transition)

	r.POST("/CashFlowRouter/Nbfc", nbfcHandler.CreateNbfc)
	r.PUT("/CashFlowRouter/Nbfc/:nbfcId", nbfcHandler.UpdateNbfc)
	r.GET("/CashFlowRouter/Nbfc", nbfcHandler.ListNbfcs)

	r.POST("/CashFlowRouter/EligibilityRule", eligibilityRuleHandler.UpsertRule)
	r.GET("/CashFlowRouter/EligibilityRule", eligibilityRuleHandler.GetRules)

	r.GET("/CashFlowRouter/CashFlow/:nbfcId", cashFlowHandler.GetDailyCashFlow)
	r.POST("/CashFlowRouter/CapitalInflow", cashFlowHandler.RegisterCapitalInflow)
	r.POST("/CashFlowRouter/HoldCash", cashFlowHandler.RegisterHoldCash)
	r.POST("/CashFlowRouter/UserRatio", cashFlowHandler.RegisterUserRatio)

	return r, nil
}
