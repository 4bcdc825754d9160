package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// AnalysisServiceName is the fully-qualified name of the AnalysisService service.
	AnalysisServiceName = "splitledger.v1.AnalysisService"
)

// Procedure names for AnalysisService RPCs.
const (
	AnalysisServiceGetGroupBalancesProcedure   = "/splitledger.v1.AnalysisService/GetGroupBalances"
	AnalysisServiceGetSettlementsProcedure     = "/splitledger.v1.AnalysisService/GetSettlements"
	AnalysisServiceGetCategorySummaryProcedure = "/splitledger.v1.AnalysisService/GetCategorySummary"
	AnalysisServiceGetGroupAnalysisProcedure   = "/splitledger.v1.AnalysisService/GetGroupAnalysis"
	AnalysisServiceGetGeneralAnalysisProcedure = "/splitledger.v1.AnalysisService/GetGeneralAnalysis"
)

// AnalysisServiceHandler is implemented by the server side of AnalysisService.
type AnalysisServiceHandler interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetSettlements(context.Context, *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error)
	GetCategorySummary(context.Context, *connect.Request[api.GetCategorySummaryRequest]) (*connect.Response[api.GetCategorySummaryResponse], error)
	GetGroupAnalysis(context.Context, *connect.Request[api.GetGroupAnalysisRequest]) (*connect.Response[api.GetGroupAnalysisResponse], error)
	GetGeneralAnalysis(context.Context, *connect.Request[api.GetGeneralAnalysisRequest]) (*connect.Response[api.GetGeneralAnalysisResponse], error)
}

// NewAnalysisServiceHandler builds an HTTP handler from the service implementation.
func NewAnalysisServiceHandler(svc AnalysisServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(AnalysisServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(AnalysisServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	mux.Handle(AnalysisServiceGetSettlementsProcedure, connect.NewUnaryHandler(AnalysisServiceGetSettlementsProcedure, svc.GetSettlements, opts...))
	mux.Handle(AnalysisServiceGetCategorySummaryProcedure, connect.NewUnaryHandler(AnalysisServiceGetCategorySummaryProcedure, svc.GetCategorySummary, opts...))
	mux.Handle(AnalysisServiceGetGroupAnalysisProcedure, connect.NewUnaryHandler(AnalysisServiceGetGroupAnalysisProcedure, svc.GetGroupAnalysis, opts...))
	mux.Handle(AnalysisServiceGetGeneralAnalysisProcedure, connect.NewUnaryHandler(AnalysisServiceGetGeneralAnalysisProcedure, svc.GetGeneralAnalysis, opts...))
	return "/" + AnalysisServiceName + "/", mux
}

// AnalysisServiceClient is a client for the splitledger.v1.AnalysisService service.
type AnalysisServiceClient interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetSettlements(context.Context, *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error)
	GetCategorySummary(context.Context, *connect.Request[api.GetCategorySummaryRequest]) (*connect.Response[api.GetCategorySummaryResponse], error)
	GetGroupAnalysis(context.Context, *connect.Request[api.GetGroupAnalysisRequest]) (*connect.Response[api.GetGroupAnalysisResponse], error)
	GetGeneralAnalysis(context.Context, *connect.Request[api.GetGeneralAnalysisRequest]) (*connect.Response[api.GetGeneralAnalysisResponse], error)
}

// NewAnalysisServiceClient constructs a client for AnalysisService.
func NewAnalysisServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AnalysisServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithJSON()}, opts...)
	return &analysisServiceClient{
		getGroupBalances:   connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+AnalysisServiceGetGroupBalancesProcedure, opts...),
		getSettlements:     connect.NewClient[api.GetSettlementsRequest, api.GetSettlementsResponse](httpClient, baseURL+AnalysisServiceGetSettlementsProcedure, opts...),
		getCategorySummary: connect.NewClient[api.GetCategorySummaryRequest, api.GetCategorySummaryResponse](httpClient, baseURL+AnalysisServiceGetCategorySummaryProcedure, opts...),
		getGroupAnalysis:   connect.NewClient[api.GetGroupAnalysisRequest, api.GetGroupAnalysisResponse](httpClient, baseURL+AnalysisServiceGetGroupAnalysisProcedure, opts...),
		getGeneralAnalysis: connect.NewClient[api.GetGeneralAnalysisRequest, api.GetGeneralAnalysisResponse](httpClient, baseURL+AnalysisServiceGetGeneralAnalysisProcedure, opts...),
	}
}

type analysisServiceClient struct {
	getGroupBalances   *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getSettlements     *connect.Client[api.GetSettlementsRequest, api.GetSettlementsResponse]
	getCategorySummary *connect.Client[api.GetCategorySummaryRequest, api.GetCategorySummaryResponse]
	getGroupAnalysis   *connect.Client[api.GetGroupAnalysisRequest, api.GetGroupAnalysisResponse]
	getGeneralAnalysis *connect.Client[api.GetGeneralAnalysisRequest, api.GetGeneralAnalysisResponse]
}

func (c *analysisServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *analysisServiceClient) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	return c.getSettlements.CallUnary(ctx, req)
}

func (c *analysisServiceClient) GetCategorySummary(ctx context.Context, req *connect.Request[api.GetCategorySummaryRequest]) (*connect.Response[api.GetCategorySummaryResponse], error) {
	return c.getCategorySummary.CallUnary(ctx, req)
}

func (c *analysisServiceClient) GetGroupAnalysis(ctx context.Context, req *connect.Request[api.GetGroupAnalysisRequest]) (*connect.Response[api.GetGroupAnalysisResponse], error) {
	return c.getGroupAnalysis.CallUnary(ctx, req)
}

func (c *analysisServiceClient) GetGeneralAnalysis(ctx context.Context, req *connect.Request[api.GetGeneralAnalysisRequest]) (*connect.Response[api.GetGeneralAnalysisResponse], error) {
	return c.getGeneralAnalysis.CallUnary(ctx, req)
}
