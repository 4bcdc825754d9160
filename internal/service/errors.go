package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	errNotMember     = errors.New("caller is not a member of this group")
	errGroupRequired = errors.New("group_id required")
)

// toConnectError maps storage and engine errors to Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, calculator.ErrInvalidGroup):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// callerID returns the authenticated member, or Unauthenticated when the
// interceptor chain did not set one.
func callerID(ctx context.Context) (string, error) {
	memberID := middleware.GetMemberID(ctx)
	if memberID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("no member identity on request"))
	}
	return memberID, nil
}

// authorize loads a group and checks that the caller belongs to it.
func authorize(ctx context.Context, store storage.Store, groupID string) (*models.Group, string, error) {
	memberID, err := callerID(ctx)
	if err != nil {
		return nil, "", err
	}
	if groupID == "" {
		return nil, "", connect.NewError(connect.CodeInvalidArgument, errGroupRequired)
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, "", toConnectError(err)
	}
	if !group.HasMember(memberID) {
		slog.WarnContext(ctx, "Access denied", "group_id", groupID, "member_id", memberID)
		return nil, "", connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return group, memberID, nil
}
