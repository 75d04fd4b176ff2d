package redisx

import "fmt"

const ns = "lightwave:v1"

// KeySnapshot holds the latest decoded full snapshot of one collection,
// written by the watcher and read by queries and the SSE relay.
func KeySnapshot(collection string) string {
	return fmt.Sprintf("%s:col:%s:snapshot", ns, collection)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelCollectionsChanged() string {
	return ns + ":collections:changed"
}
