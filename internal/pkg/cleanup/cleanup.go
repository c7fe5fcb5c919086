package cleanup

import (
	"context"
	"net/http"
	"time"

	"cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/db/redis"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
)

// AuditPublisher is any booking audit sink that can be closed.
type AuditPublisher interface {
	Close()
}

// SchedulerStopper stops the cron scheduler and reports when running jobs drain.
type SchedulerStopper interface {
	Stop() context.Context
}

func CleanupResources(
	ctx context.Context,
	pubsubConsumer interface{ Close() error },
	auditPublisher AuditPublisher,
	scheduler SchedulerStopper,
	mongoClient *mongo.MongoClient,
	redisClient *redis.RedisClient,
	server *http.Server,
) {
	logger.CtxInfo(ctx, log_messages.CleanupStarted)

	cleanupScheduler(ctx, scheduler)
	cleanupHTTPServer(ctx, server)
	cleanupPubSubResource(ctx, pubsubConsumer)

	if auditPublisher != nil {
		auditPublisher.Close()
		logger.CtxInfo(ctx, "Booking audit publisher closed")
	}

	cleanupMongoResource(ctx, mongoClient)
	cleanupRedisResource(ctx, redisClient)

	logger.CtxInfo(ctx, log_messages.CleanupCompleted)
}

func cleanupScheduler(ctx context.Context, scheduler SchedulerStopper) {
	if scheduler == nil {
		return
	}
	drained := scheduler.Stop()
	select {
	case <-drained.Done():
		logger.CtxInfo(ctx, "Scheduler stopped, running jobs drained")
	case <-time.After(30 * time.Second):
		logger.CtxWarn(ctx, "Scheduler stop timed out with jobs still running")
	}
}

func cleanupHTTPServer(ctx context.Context, server *http.Server) {
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.CtxError(ctx, "Failed to shutdown HTTP server", err)
	} else {
		logger.CtxInfo(ctx, "HTTP server shutdown successfully")
	}
}

func cleanupPubSubResource(ctx context.Context, resource interface{ Close() error }) {
	if resource == nil {
		return
	}
	if unsubscribeFunc, ok := resource.(interface{ Unsubscribe(context.Context) error }); ok {
		if err := unsubscribeFunc.Unsubscribe(ctx); err != nil {
			logger.CtxError(ctx, "Failed to unsubscribe from PubSub", err)
		}
	}
	if err := resource.Close(); err != nil {
		logger.CtxError(ctx, "Failed to close PubSub consumer", err)
	} else {
		logger.CtxInfo(ctx, "PubSub consumer closed successfully")
	}
}

func cleanupMongoResource(ctx context.Context, client *mongo.MongoClient) {
	if client == nil || client.Client == nil {
		return
	}
	if err := mongo.Disconnect(client.Client); err != nil {
		logger.CtxError(ctx, "Failed to disconnect MongoDB client", err)
	} else {
		logger.CtxInfo(ctx, "MongoDB client disconnected successfully")
	}
}

func cleanupRedisResource(ctx context.Context, client *redis.RedisClient) {
	if client == nil || client.Client == nil {
		return
	}
	if err := redis.Disconnect(client.Client); err != nil {
		logger.CtxError(ctx, "Failed to close Redis client", err)
	} else {
		logger.CtxInfo(ctx, "Redis client closed successfully")
	}
}
