// Package apiconnect binds the api messages to Connect handlers and clients.
package apiconnect

import (
	context "context"
	errors "errors"
	http "net/http"
	strings "strings"

	connect "connectrpc.com/connect"

	api "github.com/mmynk/groupledger/pkg/api"
)

// This is the package prefix of every procedure path.
const packageName = "groupledger.v1"

// Service names.
const (
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = packageName + ".GroupService"

	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = packageName + ".ExpenseService"

	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = packageName + ".LedgerService"
)

// Procedure paths, as they appear in the URL.
const (
	GroupServiceCreateGroupProcedure       = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure          = "/" + GroupServiceName + "/GetGroup"
	GroupServiceInviteMemberProcedure      = "/" + GroupServiceName + "/InviteMember"
	GroupServiceUpdatePlaceholderProcedure = "/" + GroupServiceName + "/UpdatePlaceholder"
	GroupServiceRemoveMemberProcedure      = "/" + GroupServiceName + "/RemoveMember"
	ExpenseServicePreviewSplitProcedure    = "/" + ExpenseServiceName + "/PreviewSplit"
	ExpenseServiceRebalanceSharesProcedure = "/" + ExpenseServiceName + "/RebalanceShares"
	ExpenseServiceSubmitExpenseProcedure   = "/" + ExpenseServiceName + "/SubmitExpense"
	ExpenseServiceListExpensesProcedure    = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure   = "/" + ExpenseServiceName + "/DeleteExpense"
	LedgerServiceGetBalancesProcedure      = "/" + LedgerServiceName + "/GetBalances"
	LedgerServiceAddSettlementProcedure    = "/" + LedgerServiceName + "/AddSettlement"
	LedgerServiceListSettlementsProcedure  = "/" + LedgerServiceName + "/ListSettlements"
)

// handlerOptions puts the api JSON codec in front of caller options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// GroupServiceClient is a client for the groupledger.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error)
	UpdatePlaceholder(context.Context, *connect.Request[api.UpdatePlaceholderRequest]) (*connect.Response[api.UpdatePlaceholderResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewGroupServiceClient constructs a client for the groupledger.v1.GroupService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient,
			baseURL+GroupServiceCreateGroupProcedure,
			opts...,
		),
		getGroup: connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
			httpClient,
			baseURL+GroupServiceGetGroupProcedure,
			opts...,
		),
		inviteMember: connect.NewClient[api.InviteMemberRequest, api.InviteMemberResponse](
			httpClient,
			baseURL+GroupServiceInviteMemberProcedure,
			opts...,
		),
		updatePlaceholder: connect.NewClient[api.UpdatePlaceholderRequest, api.UpdatePlaceholderResponse](
			httpClient,
			baseURL+GroupServiceUpdatePlaceholderProcedure,
			opts...,
		),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](
			httpClient,
			baseURL+GroupServiceRemoveMemberProcedure,
			opts...,
		),
	}
}

// groupServiceClient implements GroupServiceClient.
type groupServiceClient struct {
	createGroup       *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup          *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	inviteMember      *connect.Client[api.InviteMemberRequest, api.InviteMemberResponse]
	updatePlaceholder *connect.Client[api.UpdatePlaceholderRequest, api.UpdatePlaceholderResponse]
	removeMember      *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

// CreateGroup calls groupledger.v1.GroupService.CreateGroup.
func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

// GetGroup calls groupledger.v1.GroupService.GetGroup.
func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

// InviteMember calls groupledger.v1.GroupService.InviteMember.
func (c *groupServiceClient) InviteMember(ctx context.Context, req *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	return c.inviteMember.CallUnary(ctx, req)
}

// UpdatePlaceholder calls groupledger.v1.GroupService.UpdatePlaceholder.
func (c *groupServiceClient) UpdatePlaceholder(ctx context.Context, req *connect.Request[api.UpdatePlaceholderRequest]) (*connect.Response[api.UpdatePlaceholderResponse], error) {
	return c.updatePlaceholder.CallUnary(ctx, req)
}

// RemoveMember calls groupledger.v1.GroupService.RemoveMember.
func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

// GroupServiceHandler is an implementation of the groupledger.v1.GroupService service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error)
	UpdatePlaceholder(context.Context, *connect.Request[api.UpdatePlaceholderRequest]) (*connect.Response[api.UpdatePlaceholderResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	groupServiceCreateGroupHandler := connect.NewUnaryHandler(
		GroupServiceCreateGroupProcedure,
		svc.CreateGroup,
		opts...,
	)
	groupServiceGetGroupHandler := connect.NewUnaryHandler(
		GroupServiceGetGroupProcedure,
		svc.GetGroup,
		opts...,
	)
	groupServiceInviteMemberHandler := connect.NewUnaryHandler(
		GroupServiceInviteMemberProcedure,
		svc.InviteMember,
		opts...,
	)
	groupServiceUpdatePlaceholderHandler := connect.NewUnaryHandler(
		GroupServiceUpdatePlaceholderProcedure,
		svc.UpdatePlaceholder,
		opts...,
	)
	groupServiceRemoveMemberHandler := connect.NewUnaryHandler(
		GroupServiceRemoveMemberProcedure,
		svc.RemoveMember,
		opts...,
	)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			groupServiceCreateGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			groupServiceGetGroupHandler.ServeHTTP(w, r)
		case GroupServiceInviteMemberProcedure:
			groupServiceInviteMemberHandler.ServeHTTP(w, r)
		case GroupServiceUpdatePlaceholderProcedure:
			groupServiceUpdatePlaceholderHandler.ServeHTTP(w, r)
		case GroupServiceRemoveMemberProcedure:
			groupServiceRemoveMemberHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) InviteMember(context.Context, *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.GroupService.InviteMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdatePlaceholder(context.Context, *connect.Request[api.UpdatePlaceholderRequest]) (*connect.Response[api.UpdatePlaceholderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.GroupService.UpdatePlaceholder is not implemented"))
}

func (UnimplementedGroupServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.GroupService.RemoveMember is not implemented"))
}

// ExpenseServiceClient is a client for the groupledger.v1.ExpenseService service.
type ExpenseServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	RebalanceShares(context.Context, *connect.Request[api.RebalanceSharesRequest]) (*connect.Response[api.RebalanceSharesResponse], error)
	SubmitExpense(context.Context, *connect.Request[api.SubmitExpenseRequest]) (*connect.Response[api.SubmitExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceClient constructs a client for the groupledger.v1.ExpenseService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		previewSplit: connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](
			httpClient,
			baseURL+ExpenseServicePreviewSplitProcedure,
			opts...,
		),
		rebalanceShares: connect.NewClient[api.RebalanceSharesRequest, api.RebalanceSharesResponse](
			httpClient,
			baseURL+ExpenseServiceRebalanceSharesProcedure,
			opts...,
		),
		submitExpense: connect.NewClient[api.SubmitExpenseRequest, api.SubmitExpenseResponse](
			httpClient,
			baseURL+ExpenseServiceSubmitExpenseProcedure,
			opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient,
			baseURL+ExpenseServiceListExpensesProcedure,
			opts...,
		),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](
			httpClient,
			baseURL+ExpenseServiceDeleteExpenseProcedure,
			opts...,
		),
	}
}

// expenseServiceClient implements ExpenseServiceClient.
type expenseServiceClient struct {
	previewSplit    *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	rebalanceShares *connect.Client[api.RebalanceSharesRequest, api.RebalanceSharesResponse]
	submitExpense   *connect.Client[api.SubmitExpenseRequest, api.SubmitExpenseResponse]
	listExpenses    *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense   *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
}

// PreviewSplit calls groupledger.v1.ExpenseService.PreviewSplit.
func (c *expenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

// RebalanceShares calls groupledger.v1.ExpenseService.RebalanceShares.
func (c *expenseServiceClient) RebalanceShares(ctx context.Context, req *connect.Request[api.RebalanceSharesRequest]) (*connect.Response[api.RebalanceSharesResponse], error) {
	return c.rebalanceShares.CallUnary(ctx, req)
}

// SubmitExpense calls groupledger.v1.ExpenseService.SubmitExpense.
func (c *expenseServiceClient) SubmitExpense(ctx context.Context, req *connect.Request[api.SubmitExpenseRequest]) (*connect.Response[api.SubmitExpenseResponse], error) {
	return c.submitExpense.CallUnary(ctx, req)
}

// ListExpenses calls groupledger.v1.ExpenseService.ListExpenses.
func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// DeleteExpense calls groupledger.v1.ExpenseService.DeleteExpense.
func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// ExpenseServiceHandler is an implementation of the groupledger.v1.ExpenseService service.
type ExpenseServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	RebalanceShares(context.Context, *connect.Request[api.RebalanceSharesRequest]) (*connect.Response[api.RebalanceSharesResponse], error)
	SubmitExpense(context.Context, *connect.Request[api.SubmitExpenseRequest]) (*connect.Response[api.SubmitExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	expenseServicePreviewSplitHandler := connect.NewUnaryHandler(
		ExpenseServicePreviewSplitProcedure,
		svc.PreviewSplit,
		opts...,
	)
	expenseServiceRebalanceSharesHandler := connect.NewUnaryHandler(
		ExpenseServiceRebalanceSharesProcedure,
		svc.RebalanceShares,
		opts...,
	)
	expenseServiceSubmitExpenseHandler := connect.NewUnaryHandler(
		ExpenseServiceSubmitExpenseProcedure,
		svc.SubmitExpense,
		opts...,
	)
	expenseServiceListExpensesHandler := connect.NewUnaryHandler(
		ExpenseServiceListExpensesProcedure,
		svc.ListExpenses,
		opts...,
	)
	expenseServiceDeleteExpenseHandler := connect.NewUnaryHandler(
		ExpenseServiceDeleteExpenseProcedure,
		svc.DeleteExpense,
		opts...,
	)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServicePreviewSplitProcedure:
			expenseServicePreviewSplitHandler.ServeHTTP(w, r)
		case ExpenseServiceRebalanceSharesProcedure:
			expenseServiceRebalanceSharesHandler.ServeHTTP(w, r)
		case ExpenseServiceSubmitExpenseProcedure:
			expenseServiceSubmitExpenseHandler.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			expenseServiceListExpensesHandler.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			expenseServiceDeleteExpenseHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.ExpenseService.PreviewSplit is not implemented"))
}

func (UnimplementedExpenseServiceHandler) RebalanceShares(context.Context, *connect.Request[api.RebalanceSharesRequest]) (*connect.Response[api.RebalanceSharesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.ExpenseService.RebalanceShares is not implemented"))
}

func (UnimplementedExpenseServiceHandler) SubmitExpense(context.Context, *connect.Request[api.SubmitExpenseRequest]) (*connect.Response[api.SubmitExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.ExpenseService.SubmitExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.ExpenseService.ListExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.ExpenseService.DeleteExpense is not implemented"))
}

// LedgerServiceClient is a client for the groupledger.v1.LedgerService service.
type LedgerServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	AddSettlement(context.Context, *connect.Request[api.AddSettlementRequest]) (*connect.Response[api.AddSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewLedgerServiceClient constructs a client for the groupledger.v1.LedgerService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](
			httpClient,
			baseURL+LedgerServiceGetBalancesProcedure,
			opts...,
		),
		addSettlement: connect.NewClient[api.AddSettlementRequest, api.AddSettlementResponse](
			httpClient,
			baseURL+LedgerServiceAddSettlementProcedure,
			opts...,
		),
		listSettlements: connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](
			httpClient,
			baseURL+LedgerServiceListSettlementsProcedure,
			opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	getBalances     *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	addSettlement   *connect.Client[api.AddSettlementRequest, api.AddSettlementResponse]
	listSettlements *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
}

// GetBalances calls groupledger.v1.LedgerService.GetBalances.
func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// AddSettlement calls groupledger.v1.LedgerService.AddSettlement.
func (c *ledgerServiceClient) AddSettlement(ctx context.Context, req *connect.Request[api.AddSettlementRequest]) (*connect.Response[api.AddSettlementResponse], error) {
	return c.addSettlement.CallUnary(ctx, req)
}

// ListSettlements calls groupledger.v1.LedgerService.ListSettlements.
func (c *ledgerServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the groupledger.v1.LedgerService service.
type LedgerServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	AddSettlement(context.Context, *connect.Request[api.AddSettlementRequest]) (*connect.Response[api.AddSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	ledgerServiceGetBalancesHandler := connect.NewUnaryHandler(
		LedgerServiceGetBalancesProcedure,
		svc.GetBalances,
		opts...,
	)
	ledgerServiceAddSettlementHandler := connect.NewUnaryHandler(
		LedgerServiceAddSettlementProcedure,
		svc.AddSettlement,
		opts...,
	)
	ledgerServiceListSettlementsHandler := connect.NewUnaryHandler(
		LedgerServiceListSettlementsProcedure,
		svc.ListSettlements,
		opts...,
	)
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceGetBalancesProcedure:
			ledgerServiceGetBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceAddSettlementProcedure:
			ledgerServiceAddSettlementHandler.ServeHTTP(w, r)
		case LedgerServiceListSettlementsProcedure:
			ledgerServiceListSettlementsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.LedgerService.GetBalances is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddSettlement(context.Context, *connect.Request[api.AddSettlementRequest]) (*connect.Response[api.AddSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.LedgerService.AddSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupledger.v1.LedgerService.ListSettlements is not implemented"))
}
