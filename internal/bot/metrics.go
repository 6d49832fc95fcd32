// internal/bot/metrics.go
package bot

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// pushJob is the Pushgateway job name of the CLI.
const pushJob = "pumpfun"

// PushMetrics sends the collected trade metrics to the configured Pushgateway.
// It is a no-op without a pushgateway_url or registry.
func (r *Runner) PushMetrics(ctx context.Context) error {
	if r.config.PushgatewayURL == "" || r.registry == nil {
		return nil
	}

	pusher := push.New(r.config.PushgatewayURL, pushJob).Gatherer(r.registry)
	if r.wallet != "" {
		pusher = pusher.Grouping("wallet", r.wallet)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", r.config.PushgatewayURL, err)
	}

	r.logger.Debug("Metrics pushed", zap.String("pushgateway", r.config.PushgatewayURL))
	return nil
}
