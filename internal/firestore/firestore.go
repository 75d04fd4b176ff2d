package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	CredentialsFile string
}

// New initializes a Firestore client. With an empty CredentialsFile the
// client falls back to Application Default Credentials. The connection is
// probed with a short-lived read so a misconfigured project fails at startup
// instead of on the first request.
func New(ctx context.Context, cfg Config) (*firestore.Client, error) {
	const op = "firestore.New"

	var (
		client *firestore.Client
		err    error
	)
	if cfg.CredentialsFile != "" {
		client, err = firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, cfg.ProjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Collections(ctxPing).GetAll(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return client, nil
}
