package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	leaderboardevents "github.com/snake-playground/backend/app/modules/leaderboard/domain/events"
	"github.com/snake-playground/backend/internal/metrics"
)

// New creates the in-process pub/sub bus.
func New(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// RunScoreMetrics consumes score-recorded events and counts them. It returns
// once the subscription is set up; consumption stops when ctx is canceled.
func RunScoreMetrics(ctx context.Context, sub message.Subscriber, m *metrics.Metrics, logger *slog.Logger) error {
	messages, err := sub.Subscribe(ctx, leaderboardevents.TopicScoreRecorded)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			m.ScoresRecorded.Inc()
			msg.Ack()
		}
		logger.Debug("score metrics consumer stopped")
	}()

	return nil
}
