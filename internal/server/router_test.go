package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupledger/internal/auth"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/pkg/api"
	"github.com/mmynk/groupledger/pkg/api/apiconnect"
)

type previewOnly struct {
	apiconnect.UnimplementedExpenseServiceHandler
}

func (previewOnly) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return connect.NewResponse(&api.PreviewSplitResponse{
		Allocations: []*api.Allocation{{MemberID: "a", Amount: "1.00"}},
	}), nil
}

func newTestRouter(t *testing.T) (*httptest.Server, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := New(Services{
		Groups:   apiconnect.UnimplementedGroupServiceHandler{},
		Expenses: previewOnly{},
		Ledger:   apiconnect.UnimplementedLedgerServiceHandler{},
	}, jwtManager, []string{"https://app.example"})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, jwtManager
}

func TestRouter_Health(t *testing.T) {
	server, _ := newTestRouter(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestRouter_RPC(t *testing.T) {
	server, jwtManager := newTestRouter(t)
	token, err := jwtManager.Generate(&models.Member{ID: "m1", AuthUserID: "u1"})
	require.NoError(t, err)

	client := apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL)

	req := connect.NewRequest(&api.PreviewSplitRequest{Amount: "1.00"})
	req.Header().Set("Authorization", "Bearer "+token)
	resp, err := client.PreviewSplit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "a", resp.Msg.Allocations[0].MemberID)

	_, err = client.PreviewSplit(context.Background(), connect.NewRequest(&api.PreviewSplitRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	rebalanceReq := connect.NewRequest(&api.RebalanceSharesRequest{})
	rebalanceReq.Header().Set("Authorization", "Bearer "+token)
	_, err = client.RebalanceShares(context.Background(), rebalanceReq)
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))
}

func TestRouter_MetricsAfterRPC(t *testing.T) {
	server, _ := newTestRouter(t)

	client := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)
	_, _ = client.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{}))

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "groupledger_rpc_requests_total"), "missing rpc counter")
}

func TestRouter_CORSPreflight(t *testing.T) {
	server, _ := newTestRouter(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.ExpenseServicePreviewSplitProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
