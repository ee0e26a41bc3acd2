package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/meeting-tracker/internal/model"
)

// Open builds a Client for the configured backend. For the REST driver
// cfg.ServiceKey must already be resolved.
func Open(ctx context.Context, cfg model.BackendConfig) (*Client, error) {
	switch cfg.Driver {
	case model.DriverSQLite, model.DriverPostgres:
		db, err := OpenSQL(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLClient(db, cfg.Driver), nil

	case model.DriverREST:
		if cfg.URL == "" {
			return nil, errors.New("rest backend needs a url")
		}
		if cfg.ServiceKey == "" {
			return nil, errors.New("rest backend needs a service key: run `tracker auth set-key`")
		}
		return NewRESTClient(cfg.URL, cfg.ServiceKey), nil

	default:
		return nil, fmt.Errorf("unknown backend driver %q", cfg.Driver)
	}
}
