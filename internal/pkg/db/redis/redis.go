package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/config"
	"cashflow-router/internal/pkg/logger"
)

type RedisClient struct {
	Client *goredis.Client
}

func ConnectToRedis(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	return connectWithConnector(ctx, cfg, &DefaultRedisConnector{})
}

func connectWithConnector(ctx context.Context, cfg config.RedisConfig, connector RedisConnector) (*RedisClient, error) {

	logger.CtxInfo(ctx, "Connecting to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.Bool("enable_tls", cfg.EnableTLS),
	)

	options := &goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.ConnectTimeout,
	}

	if cfg.EnableTLS {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			logger.CtxError(ctx, "Failed to build Redis TLS config", err)
			return nil, fmt.Errorf("failed to build TLS config: %w", err)
		}
		options.TLSConfig = tlsConfig
	}

	client, err := connector.Connect(ctx, options)
	if err != nil {
		logger.CtxError(ctx, "Redis ping failed", err, zap.String("addr", cfg.Addr))
		return nil, err
	}

	logger.CtxInfo(ctx, "Successfully connected to Redis", zap.String("addr", cfg.Addr))

	return &RedisClient{Client: client}, nil
}

func buildTLSConfig(cfg config.RedisConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if cfg.CertContent == "" {
		return tlsConfig, nil
	}

	certContentBytes := []byte(cfg.CertContent)
	var loadedAny bool

	if cert, err := tls.X509KeyPair(certContentBytes, certContentBytes); err == nil {
		tlsConfig.Certificates = []tls.Certificate{cert}
		loadedAny = true
	}

	caCertPool := x509.NewCertPool()
	if caCertPool.AppendCertsFromPEM(certContentBytes) {
		tlsConfig.RootCAs = caCertPool
		loadedAny = true
	}

	if !loadedAny {
		return nil, fmt.Errorf("failed to parse PEM content as a valid CA certificate or client key pair")
	}

	return tlsConfig, nil
}

func Disconnect(client *goredis.Client) error {
	return client.Close()
}
