package client

import (
	"context"

	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Gateway is the State Gateway boundary consumed by the state cache.
type Gateway interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Flush(ctx context.Context, snap models.Snapshot) error
	Status(ctx context.Context) models.DiagnosticInfo
	Close() error
}

// Connect returns a gRPC gateway client when addr is set and an in-process
// gateway over the database at dbPath otherwise.
func Connect(ctx context.Context, addr, dbPath string, logger logging.Logger) (Gateway, error) {
	if addr != "" {
		return NewGRPCClient(addr, logger)
	}
	return OpenLocal(ctx, dbPath, logger)
}
