package downstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/config"
	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/models"
)

// PredictionClient calls the upstream collection prediction API. Both calls
// are bounded by the configured HTTP timeout; the projection job treats any
// failure as a skipped cycle.
type PredictionClient struct {
	httpClient *http.Client
	cfg        config.PredictionConfig
}

func NewPredictionClient(cfg config.PredictionConfig) *PredictionClient {
	return &PredictionClient{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cfg:        cfg,
	}
}

func (c *PredictionClient) GetCollectionPoll(ctx context.Context) (*models.CollectionPollResponse, error) {
	body, err := c.get(ctx, c.cfg.CollectionPollURL, nil)
	if err != nil {
		return nil, err
	}

	var response models.CollectionPollResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logger.CtxError(ctx, "Malformed collection poll payload", err)
		return nil, consts.ErrMalformedPredictionData
	}
	return &response, nil
}

func (c *PredictionClient) GetDueAmounts(ctx context.Context, dueDate string) (*models.DueAmountResponse, error) {
	body, err := c.get(ctx, c.cfg.DueAmountURL, url.Values{"date": []string{dueDate}})
	if err != nil {
		return nil, err
	}

	var response models.DueAmountResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logger.CtxError(ctx, "Malformed due amount payload", err)
		return nil, consts.ErrMalformedPredictionData
	}
	return &response, nil
}

func (c *PredictionClient) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("token", c.cfg.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.CtxError(ctx, "Prediction upstream request failed", err, zap.String("url", rawURL))
		return nil, consts.ErrPredictionUpstream
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.CtxError(ctx, "Prediction upstream returned non-200", nil,
			zap.String("url", rawURL), zap.Int("status", resp.StatusCode))
		return nil, consts.ErrPredictionUpstream
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, consts.ErrPredictionUpstream
	}
	return body, nil
}
