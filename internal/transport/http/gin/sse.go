package httpgin

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Ximianer/lightwave-erp/internal/metrics"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	fsrepo "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
)

// @Summary  Live collection updates (SSE)
// @Produce  text/event-stream
// @Success  200 {string} string "event stream"
// @Router   /stream [get]
func handleStream(
	cache *redisrepo.Cache,
	pubsub *redisx.CollectionsPubSub,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.StreamClients.Inc()
		defer metrics.StreamClients.Dec()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		changes := make(chan string, 16)
		go func() {
			err := pubsub.Subscribe(ctx, func(_ context.Context, collection string) {
				// drop rather than block: a lost notification only delays the
				// client until the next change
				select {
				case changes <- collection:
				default:
				}
			})
			if err != nil && ctx.Err() == nil {
				logger.Error("stream subscription failed", "error", err)
			}
			close(changes)
		}()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		// replay the cached snapshot of each collection so a fresh client
		// starts from current state instead of an empty page
		for _, col := range fsrepo.Collections {
			sendSnapshot(c, ctx, cache, col)
		}
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case col, ok := <-changes:
				if !ok {
					return false
				}
				sendSnapshot(c, ctx, cache, col)
				return true
			}
		})
	}
}

// sendSnapshot emits the cached collection state as one SSE event named after
// the collection. A cold cache degrades to a bare change marker; the client
// refetches over plain HTTP.
func sendSnapshot(
	c *gin.Context,
	ctx context.Context,
	cache *redisrepo.Cache,
	collection string,
) {
	raw, ok, err := cache.GetString(ctx, redisx.KeySnapshot(collection))
	if err != nil || !ok {
		c.SSEvent("change", collection)
		return
	}
	c.SSEvent(collection, raw)
}
