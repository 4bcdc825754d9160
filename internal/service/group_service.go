package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService: group lifecycle and the
// expense and payment ledger.
type GroupService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewGroupService creates a new GroupService. A nil publisher disables events.
func NewGroupService(store storage.Store, publisher events.Publisher) *GroupService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GroupService{store: store, publisher: publisher}
}

// CreateGroup creates a group owned by the caller, who becomes its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	memberID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		OwnerID:     memberID,
		Members:     []models.Member{{ID: memberID, DisplayName: middleware.GetDisplayName(ctx)}},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.ErrorContext(ctx, "CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Group created", "group_id", group.ID, "owner_id", memberID)
	events.Emit(ctx, s.publisher, events.New(events.GroupCreated, group.ID, group.ID, memberID))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group with its full ledger.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, _, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroup failed - could not list expenses", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroup failed - could not list payments", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.GetGroupResponse{
		Group:    toAPIGroup(group),
		Expenses: make([]*api.Expense, len(expenses)),
		Payments: make([]*api.Payment, len(payments)),
	}
	for i, e := range expenses {
		resp.Expenses[i] = toAPIExpense(e)
	}
	for i, p := range payments {
		resp.Payments[i] = toAPIPayment(p)
	}
	return connect.NewResponse(resp), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	memberID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, memberID)
	if err != nil {
		slog.ErrorContext(ctx, "ListGroups failed", "member_id", memberID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.ListGroupsResponse{Groups: make([]*api.Group, len(groups))}
	for i, g := range groups {
		resp.Groups[i] = toAPIGroup(g)
	}
	slog.DebugContext(ctx, "ListGroups successful", "member_id", memberID, "count", len(groups))
	return connect.NewResponse(resp), nil
}

// DeleteGroup removes a group and its ledger. Only the owner may delete.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	group, memberID, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != memberID {
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("only the group owner can delete the group"))
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.ErrorContext(ctx, "DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Group deleted", "group_id", group.ID)
	events.Emit(ctx, s.publisher, events.New(events.GroupDeleted, group.ID, group.ID, memberID))
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// JoinGroup adds the caller to a group. Joining twice is a no-op.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	memberID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupRequired)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group.HasMember(memberID) {
		return connect.NewResponse(&api.JoinGroupResponse{Group: toAPIGroup(group)}), nil
	}

	member := models.Member{ID: memberID, DisplayName: middleware.GetDisplayName(ctx)}
	if err := s.store.AddGroupMember(ctx, group.ID, member); err != nil {
		slog.ErrorContext(ctx, "JoinGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	if group, err = s.store.GetGroup(ctx, group.ID); err != nil {
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Member joined group", "group_id", group.ID, "member_id", memberID)
	events.Emit(ctx, s.publisher, events.New(events.GroupMemberJoined, group.ID, memberID, memberID))
	return connect.NewResponse(&api.JoinGroupResponse{Group: toAPIGroup(group)}), nil
}

// AddExpense records an amount a member paid for the whole group.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	group, memberID, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	payerID := req.Msg.PayerID
	if payerID == "" {
		payerID = memberID
	}
	if !group.HasMember(payerID) {
		return nil, invalidArgument("payer %q is not a member of the group", payerID)
	}
	if err := validateValue(req.Msg.Value); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		PayerID:     payerID,
		Value:       req.Msg.Value,
		Category:    calculator.NormalizeCategory(req.Msg.Category),
		Description: strings.TrimSpace(req.Msg.Description),
	}
	if err := s.checkLedgerRoom(ctx, group, expense, nil); err != nil {
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "AddExpense failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Expense added",
		"group_id", group.ID,
		"expense_id", expense.ID,
		"payer_id", payerID,
		"category", expense.Category,
	)
	events.Emit(ctx, s.publisher, events.New(events.ExpenseCreated, group.ID, expense.ID, memberID))
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense from the group's ledger.
func (s *GroupService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	group, memberID, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	// An expense of another group is reported as missing rather than forbidden.
	if expense.GroupID != group.ID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound))
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.ErrorContext(ctx, "DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Expense deleted", "group_id", group.ID, "expense_id", expense.ID)
	events.Emit(ctx, s.publisher, events.New(events.ExpenseDeleted, group.ID, expense.ID, memberID))
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// AddPayment records a direct transfer between two members.
func (s *GroupService) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	group, memberID, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	payerID := req.Msg.PayerID
	if payerID == "" {
		payerID = memberID
	}
	if !group.HasMember(payerID) {
		return nil, invalidArgument("payer %q is not a member of the group", payerID)
	}
	if !group.HasMember(req.Msg.TargetID) {
		return nil, invalidArgument("target %q is not a member of the group", req.Msg.TargetID)
	}
	if payerID == req.Msg.TargetID {
		return nil, invalidArgument("payer and target must differ")
	}
	if err := validateValue(req.Msg.Value); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		GroupID:  group.ID,
		PayerID:  payerID,
		TargetID: req.Msg.TargetID,
		Value:    req.Msg.Value,
	}
	if err := s.checkLedgerRoom(ctx, group, nil, payment); err != nil {
		return nil, err
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.ErrorContext(ctx, "AddPayment failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Payment added",
		"group_id", group.ID,
		"payment_id", payment.ID,
		"payer_id", payerID,
		"target_id", payment.TargetID,
	)
	events.Emit(ctx, s.publisher, events.New(events.PaymentCreated, group.ID, payment.ID, memberID))
	return connect.NewResponse(&api.AddPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// DeletePayment removes a payment from the group's ledger.
func (s *GroupService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	group, memberID, err := authorize(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	payment, err := s.store.GetPayment(ctx, req.Msg.PaymentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if payment.GroupID != group.ID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("payment %s: %w", payment.ID, storage.ErrNotFound))
	}
	if err := s.store.DeletePayment(ctx, payment.ID); err != nil {
		slog.ErrorContext(ctx, "DeletePayment failed", "payment_id", payment.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.InfoContext(ctx, "Payment deleted", "group_id", group.ID, "payment_id", payment.ID)
	events.Emit(ctx, s.publisher, events.New(events.PaymentDeleted, group.ID, payment.ID, memberID))
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// validateValue rejects amounts that are not at least one cent once rounded
// or that do not fit in int64 cents.
func validateValue(value float64) error {
	cents, ok := calculator.ToCents(value)
	if !ok {
		return invalidArgument("value %v is out of range", value)
	}
	if cents <= 0 {
		return invalidArgument("value must be positive, got %v", value)
	}
	return nil
}

// checkLedgerRoom rejects a write that would push the group's ledger past
// what the engine can balance in int64 cents.
func (s *GroupService) checkLedgerRoom(ctx context.Context, group *models.Group, expense *models.Expense, payment *models.Payment) error {
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return toConnectError(err)
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		return toConnectError(err)
	}
	if expense != nil {
		expenses = append(expenses, expense)
	}
	if payment != nil {
		payments = append(payments, payment)
	}

	if _, err := snapshot(group, expenses, payments).LedgerVolume(); err != nil {
		slog.WarnContext(ctx, "Rejected write past ledger range", "group_id", group.ID, "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}
