package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var _ apiconnect.AnalysisServiceHandler = (*AnalysisService)(nil)

// generalAnalysisWorkers bounds how many groups are loaded at once.
const generalAnalysisWorkers = 4

// AnalysisService implements the Connect AnalysisService. Every call loads a
// fresh snapshot and recomputes from scratch; nothing is cached.
type AnalysisService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewAnalysisService creates a new AnalysisService. m may be nil.
func NewAnalysisService(store storage.Store, m *metrics.Metrics) *AnalysisService {
	return &AnalysisService{store: store, metrics: m}
}

// GetGroupBalances returns every member's balance plus the caller's own.
func (s *AnalysisService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	snap, memberID, err := s.loadSnapshot(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	report, err := calculator.ComputeBalances(snap, memberID)
	if err != nil {
		return nil, s.engineError(ctx, snap.ID, err)
	}

	resp := &api.GetGroupBalancesResponse{
		Balances:   toAPIBalances(report.Balances),
		Creditors:  toAPIBalances(report.Creditors),
		Debtors:    toAPIBalances(report.Debtors),
		TotalCents: report.TotalCents,
	}
	if report.CurrentUserBalance != nil {
		resp.CurrentUserBalance = toAPIBalance(*report.CurrentUserBalance)
	}

	slog.DebugContext(ctx, "Balances computed",
		"group_id", snap.ID,
		"members", len(snap.Members),
		"creditors", len(report.Creditors),
		"debtors", len(report.Debtors),
	)
	return connect.NewResponse(resp), nil
}

// GetSettlements returns the suggested transfers and the caller's side of them.
func (s *AnalysisService) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	snap, memberID, err := s.loadSnapshot(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	report, err := calculator.ComputeBalances(snap, memberID)
	if err != nil {
		return nil, s.engineError(ctx, snap.ID, err)
	}
	settlements := calculator.MinimizeSettlements(report.Balances)
	s.metrics.ObserveSettlements(len(settlements))
	view := calculator.Perspective(settlements, memberID)

	return connect.NewResponse(&api.GetSettlementsResponse{
		Settlements:  toAPISettlements(settlements),
		OwedByOthers: toAPIDebts(view.OwedByOthers),
		OwedToOthers: toAPIDebts(view.OwedToOthers),
	}), nil
}

// GetCategorySummary returns the group's spend per category.
func (s *AnalysisService) GetCategorySummary(ctx context.Context, req *connect.Request[api.GetCategorySummaryRequest]) (*connect.Response[api.GetCategorySummaryResponse], error) {
	snap, _, err := s.loadSnapshot(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	categories, err := calculator.SummarizeCategories(snap.Expenses)
	if err != nil {
		return nil, s.engineError(ctx, snap.ID, err)
	}
	return connect.NewResponse(&api.GetCategorySummaryResponse{Categories: toAPICategories(categories)}), nil
}

// GetGroupAnalysis returns the caller's full view of one group.
func (s *AnalysisService) GetGroupAnalysis(ctx context.Context, req *connect.Request[api.GetGroupAnalysisRequest]) (*connect.Response[api.GetGroupAnalysisResponse], error) {
	snap, memberID, err := s.loadSnapshot(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	analysis, err := calculator.AnalyzeGroup(snap, memberID)
	if err != nil {
		return nil, s.engineError(ctx, snap.ID, err)
	}
	s.metrics.ObserveSettlements(len(analysis.Settlements))
	return connect.NewResponse(&api.GetGroupAnalysisResponse{Analysis: toAPIAnalysis(analysis)}), nil
}

// GetGeneralAnalysis combines the caller's analyses over every group they belong to.
func (s *AnalysisService) GetGeneralAnalysis(ctx context.Context, req *connect.Request[api.GetGeneralAnalysisRequest]) (*connect.Response[api.GetGeneralAnalysisResponse], error) {
	memberID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, memberID)
	if err != nil {
		slog.ErrorContext(ctx, "GetGeneralAnalysis failed - could not list groups", "member_id", memberID, "error", err)
		return nil, toConnectError(err)
	}

	analyses := make([]*calculator.GroupAnalysis, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generalAnalysisWorkers)
	for i, group := range groups {
		g.Go(func() error {
			snap, err := s.snapshotOf(gctx, group)
			if err != nil {
				return err
			}
			analysis, err := calculator.AnalyzeGroup(snap, memberID)
			if err != nil {
				return s.engineError(gctx, group.ID, err)
			}
			analyses[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, toConnectError(err)
	}

	general, err := calculator.CombineAnalyses(analyses)
	if err != nil {
		return nil, s.engineError(ctx, "", err)
	}
	resp := &api.GetGeneralAnalysisResponse{
		TotalBalanceCents:  general.TotalBalanceCents,
		TotalBalance:       calculator.FromCents(general.TotalBalanceCents),
		TotalOwedByMeCents: general.TotalOwedByMeCents,
		TotalOwedByMe:      calculator.FromCents(general.TotalOwedByMeCents),
		TotalOwedToMeCents: general.TotalOwedToMeCents,
		TotalOwedToMe:      calculator.FromCents(general.TotalOwedToMeCents),
		Categories:         toAPICategories(general.Categories),
		Groups:             make([]*api.GroupAnalysis, len(analyses)),
	}
	for i, a := range analyses {
		resp.Groups[i] = toAPIAnalysis(a)
	}

	slog.DebugContext(ctx, "General analysis computed", "member_id", memberID, "groups", len(groups))
	return connect.NewResponse(resp), nil
}

// loadSnapshot authorizes the caller and assembles the group's engine input.
func (s *AnalysisService) loadSnapshot(ctx context.Context, groupID string) (calculator.Group, string, error) {
	group, memberID, err := authorize(ctx, s.store, groupID)
	if err != nil {
		return calculator.Group{}, "", err
	}
	snap, err := s.snapshotOf(ctx, group)
	if err != nil {
		return calculator.Group{}, "", toConnectError(err)
	}
	return snap, memberID, nil
}

func (s *AnalysisService) snapshotOf(ctx context.Context, group *models.Group) (calculator.Group, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return calculator.Group{}, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		return calculator.Group{}, err
	}
	return snapshot(group, expenses, payments), nil
}

// engineError reports stored data the engine refused to balance.
func (s *AnalysisService) engineError(ctx context.Context, groupID string, err error) error {
	s.metrics.ObserveValidationFailure(err)
	slog.ErrorContext(ctx, "Engine rejected group snapshot", "group_id", groupID, "error", err)
	return toConnectError(err)
}
