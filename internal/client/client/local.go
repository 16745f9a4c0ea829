package client

import (
	"context"

	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	pb "github.com/dmitrijs2005/debtkeeper/internal/proto"
	"github.com/dmitrijs2005/debtkeeper/internal/server/gateway"
)

// Local runs the State Gateway in-process.
type Local struct {
	gw *gateway.Gateway
}

// OpenLocal opens (creating when needed) the database at path.
func OpenLocal(ctx context.Context, path string, logger logging.Logger) (*Local, error) {
	gw, err := gateway.Open(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	return &Local{gw: gw}, nil
}

func (l *Local) Load(ctx context.Context) (models.Snapshot, error) {
	snap, err := l.gw.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	msg, err := pb.EncodeSnapshot(snap)
	if err != nil {
		return models.Snapshot{}, err
	}
	return pb.DecodeLoadedSnapshot(msg)
}

func (l *Local) Flush(ctx context.Context, snap models.Snapshot) error {
	msg, err := pb.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	decoded, err := pb.DecodeSnapshot(msg)
	if err != nil {
		return err
	}
	return l.gw.Flush(ctx, decoded)
}

func (l *Local) Status(ctx context.Context) models.DiagnosticInfo {
	return l.gw.Status(ctx)
}

func (l *Local) Close() error {
	return l.gw.Close()
}
