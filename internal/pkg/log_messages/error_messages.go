package log_messages

const (
	FailedLoadingConfiguration      = "Failed to load configuration"
	ServerStartFailure              = "Failed to start HTTP server"
	ServerExiting                   = "Server exiting"
	FailureInPubsubConsumerCreation = "Failure in PubSub consumer creation"
	FailureInKafkaProducerCreation  = "Failure in Kafka producer creation"
	FailedMongoConnection           = "Failed to connect to MongoDB"
	FailedRedisConnection           = "Failed to connect to Redis"
	FailedSchedulerStart            = "Failed to start background job scheduler"
	RecomputeCycleSkipped           = "Capacity recompute cycle skipped, keeping last good snapshot"
	ProjectionCycleSkipped          = "Projection ingestion cycle skipped"
	ExpirySweepFailed               = "Expiry sweep run failed"
	FailedBookingAuditPublish       = "Failed to publish booking log entry to audit topic"
	FailedFailureNoticeDecode       = "Failed to decode loan failure notice"
	PubsubErrorConsuming            = "Error consuming PubSub messages"
	ServerShutdown                  = "Shutting down server"
	CleanupStarted                  = "Cleanup of resources started"
	CleanupCompleted                = "Cleanup of resources completed"

	ErrorCreatingNbfcDocument            = "Error creating NBFC document"
	ErrorFetchingNbfcDocument            = "Error fetching NBFC document"
	ErrorUpdatingNbfcDocument            = "Error updating NBFC document"
	ErrorUpsertingEligibilityRule        = "Error upserting eligibility rule"
	ErrorFetchingEligibilityRules        = "Error fetching eligibility rules"
	ErrorCreatingLoanRecord              = "Error creating loan record"
	ErrorFetchingLoanRecord              = "Error fetching loan record"
	ErrorUpdatingLoanRecord              = "Error updating loan record"
	ErrorAggregatingBookedTotals         = "Error aggregating booked totals"
	ErrorCreatingBookingLog              = "Error creating booking log entry"
	ErrorCreatingCashFlowInput           = "Error creating cash flow input document"
	ErrorResolvingCashFlowInput          = "Error resolving cash flow input window"
	ErrorUpsertingDailyCashFlow          = "Error upserting daily cash flow document"
	ErrorFetchingDailyCashFlow           = "Error fetching daily cash flow document"
	ErrorUpsertingProjection             = "Error upserting projection document"
	ErrorAggregatingProjectedCollections = "Error aggregating projected collections"
)
