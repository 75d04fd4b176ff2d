package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CollectionsPubSub announces that a collection received a new snapshot.
// Writers publish after every store write; the watcher publishes on every
// pushed snapshot; the SSE relay subscribes and forwards to clients.
type CollectionsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewCollectionsPubSub(rdb *redis.Client) *CollectionsPubSub {
	return &CollectionsPubSub{
		rdb:     rdb,
		channel: ChannelCollectionsChanged(),
	}
}

type collectionChangedMsg struct {
	Type       string `json:"type"`
	Collection string `json:"collection"`
	TsUnix     int64  `json:"ts_unix"`
}

func (p *CollectionsPubSub) PublishChanged(ctx context.Context, collection string) error {
	msg := collectionChangedMsg{
		Type:       "collection_changed",
		Collection: collection,
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *CollectionsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, collection string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg collectionChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil &&
				msg.Collection != "" {
				handler(ctx, msg.Collection)
			}
		}
	}
}
