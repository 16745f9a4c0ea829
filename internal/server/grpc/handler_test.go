package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	pb "github.com/dmitrijs2005/debtkeeper/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ---- fakes ----

type fakeGateway struct {
	mu       sync.Mutex
	snap     models.Snapshot
	loadErr  error
	flushErr error
	flushed  []models.Snapshot
	info     models.DiagnosticInfo
}

func (f *fakeGateway) Load(context.Context) (models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.Clone(), f.loadErr
}

func (f *fakeGateway) Flush(_ context.Context, s models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flushErr != nil {
		return f.flushErr
	}
	f.flushed = append(f.flushed, s)
	f.snap = s
	return nil
}

func (f *fakeGateway) Status(context.Context) models.DiagnosticInfo {
	return f.info
}

// dial starts the server on an in-memory listener and returns a client.
func dial(t *testing.T, g Gateway) pb.StateGatewayClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewGRPCServer("bufnet", nopLogger{}, g)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return pb.NewStateGatewayClient(conn)
}

func TestLoad_ReturnsSnapshot(t *testing.T) {
	g := &fakeGateway{snap: models.DefaultSnapshot()}
	c := dial(t, g)

	resp, err := c.Load(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	got, err := pb.DecodeSnapshot(resp)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAccountID, got.CurrentAccountID)
	assert.Equal(t, models.DefaultCategories, got.Settings.Categories)
}

func TestLoad_ErrorIsMapped(t *testing.T) {
	g := &fakeGateway{loadErr: fmt.Errorf("open: %w", common.ErrStorageUnavailable)}
	c := dial(t, g)

	_, err := c.Load(context.Background(), &emptypb.Empty{})
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestFlush_ValidPayloadReachesGateway(t *testing.T) {
	g := &fakeGateway{}
	c := dial(t, g)

	snap := models.DefaultSnapshot()
	snap.Transactions = []models.Transaction{{ID: "t1", AccountID: models.DefaultAccountID, Borrower: "Ann", Amount: 10, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Type: models.TypeLend}}
	payload, err := pb.EncodeSnapshot(snap)
	require.NoError(t, err)

	_, err = c.Flush(context.Background(), payload)
	require.NoError(t, err)

	require.Len(t, g.flushed, 1)
	assert.Equal(t, snap.Transactions, g.flushed[0].Transactions)
}

func TestFlush_InvalidPayloadRejected(t *testing.T) {
	g := &fakeGateway{}
	c := dial(t, g)

	cases := [][]byte{
		nil,
		[]byte("not json"),
		[]byte(`{"accounts":[{"id":"a","name":"A"}],"currentAccountId":"a","transactions":[{"id":"","accountId":"a"}]}`),
	}
	for _, p := range cases {
		_, err := c.Flush(context.Background(), wrapperspb.Bytes(p))
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
	assert.Empty(t, g.flushed)
}

func TestFlush_GatewayErrorIsInternal(t *testing.T) {
	g := &fakeGateway{flushErr: errors.New("disk full")}
	c := dial(t, g)

	payload, err := pb.EncodeSnapshot(models.DefaultSnapshot())
	require.NoError(t, err)

	_, err = c.Flush(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestStatus_ReturnsDiagnostics(t *testing.T) {
	info := models.DiagnosticInfo{StorageLocation: "/data/debtkeeper.db", StorageExists: true, StorageSizeBytes: 8192, RecordCounts: models.RecordCounts{Accounts: 1, Transactions: 4, Settings: 2}}
	c := dial(t, &fakeGateway{info: info})

	resp, err := c.Status(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	got, err := pb.DecodeDiagnostics(resp)
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrInvalidSnapshot, codes.InvalidArgument},
		{common.ErrStorageUnavailable, codes.Unavailable},
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("x"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(toStatus(tt.err)), tt.err.Error())
	}
}
