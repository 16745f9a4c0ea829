package client

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/dmitrijs2005/debtkeeper/internal/server/gateway"
	gs "github.com/dmitrijs2005/debtkeeper/internal/server/grpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startRemote serves a real gateway over an in-memory listener.
func startRemote(t *testing.T) (*GRPCClient, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	path := filepath.Join(t.TempDir(), "remote.db")
	gw, err := gateway.Open(ctx, path, logging.Discard())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := gs.NewGRPCServer("bufnet", logging.Discard(), gw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	c, err := NewGRPCClient("passthrough:///bufnet", logging.Discard(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
		_ = gw.Close()
	})
	return c, path
}

func TestGRPCClient_LoadFlushStatus(t *testing.T) {
	c, path := startRemote(t)
	ctx := context.Background()

	snap, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAccountID, snap.CurrentAccountID)

	snap.Accounts = append(snap.Accounts, models.Account{ID: "work", Name: "Work"})
	snap.Transactions = []models.Transaction{{ID: "t1", AccountID: "work", Borrower: "Lee", Amount: 9.5, Date: time.Date(2024, 8, 8, 0, 0, 0, 0, time.UTC), Type: models.TypeRepayment}}
	require.NoError(t, c.Flush(ctx, snap))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Accounts, got.Accounts)
	assert.Equal(t, snap.Transactions, got.Transactions)

	info := c.Status(ctx)
	assert.Equal(t, path, info.StorageLocation)
	assert.Equal(t, models.RecordCounts{Accounts: 2, Transactions: 1, Settings: 2}, info.RecordCounts)
}

func TestGRPCClient_FlushInvalidSnapshot(t *testing.T) {
	c, _ := startRemote(t)

	err := c.Flush(context.Background(), models.Snapshot{Accounts: []models.Account{{ID: "a"}}, CurrentAccountID: "zzz"})
	require.ErrorIs(t, err, common.ErrInvalidSnapshot)
}

func TestGRPCClient_StatusWhenUnreachable(t *testing.T) {
	lis := bufconn.Listen(1024)
	require.NoError(t, lis.Close())

	c, err := NewGRPCClient("passthrough:///down", logging.Discard(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	info := c.Status(ctx)
	assert.Equal(t, models.DiagnosticInfo{StorageLocation: "passthrough:///down"}, info)

	_, err = c.Load(ctx)
	require.Error(t, err)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		in   error
		want error
	}{
		{status.Error(codes.InvalidArgument, "bad"), common.ErrInvalidSnapshot},
		{status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
		{status.Error(codes.Canceled, "bye"), context.Canceled},
	}
	for _, tt := range tests {
		assert.True(t, errors.Is(c.mapError(tt.in), tt.want), tt.in.Error())
	}

	assert.Nil(t, c.mapError(nil))
	assert.ErrorContains(t, c.mapError(status.Error(codes.Internal, "boom")), "rpc error")
}
