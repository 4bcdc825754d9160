package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// recordingPublisher keeps every event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	groups    apiconnect.GroupServiceClient
	analysis  apiconnect.AnalysisServiceClient
	store     *sqlite.SQLiteStore
	jwt       *auth.JWTManager
	publisher *recordingPublisher
	registry  *prometheus.Registry
}

// setupTestServer serves both services with the production interceptor chain
// over a temp-file database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		store:     store,
		jwt:       auth.NewJWTManager("test-secret", time.Hour),
		publisher: &recordingPublisher{},
		registry:  prometheus.NewRegistry(),
	}
	m := metrics.New(env.registry)

	interceptors := connect.WithInterceptors(
		m.Interceptor(),
		middleware.RequireAuth(env.jwt),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, env.publisher), interceptors))
	mux.Handle(apiconnect.NewAnalysisServiceHandler(NewAnalysisService(store, m), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.groups = apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL)
	env.analysis = apiconnect.NewAnalysisServiceClient(http.DefaultClient, server.URL)
	return env
}

func (e *testEnv) token(t *testing.T, memberID string) string {
	t.Helper()
	token, err := e.jwt.Generate(memberID, "User "+memberID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

// createGroup creates a group owned by the first member; the others join.
func (e *testEnv) createGroup(t *testing.T, name string, memberIDs ...string) string {
	t.Helper()
	ctx := context.Background()

	resp, err := e.groups.CreateGroup(ctx, withToken(e.token(t, memberIDs[0]), &api.CreateGroupRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := resp.Msg.Group.ID
	for _, id := range memberIDs[1:] {
		if _, err := e.groups.JoinGroup(ctx, withToken(e.token(t, id), &api.JoinGroupRequest{GroupID: groupID})); err != nil {
			t.Fatalf("JoinGroup(%s) failed: %v", id, err)
		}
	}
	return groupID
}

func (e *testEnv) addExpense(t *testing.T, groupID, payerID string, value float64, category string) *api.Expense {
	t.Helper()
	resp, err := e.groups.AddExpense(context.Background(), withToken(e.token(t, payerID), &api.AddExpenseRequest{
		GroupID:  groupID,
		Value:    value,
		Category: category,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func (e *testEnv) addPayment(t *testing.T, groupID, payerID, targetID string, value float64) *api.Payment {
	t.Helper()
	resp, err := e.groups.AddPayment(context.Background(), withToken(e.token(t, payerID), &api.AddPaymentRequest{
		GroupID:  groupID,
		TargetID: targetID,
		Value:    value,
	}))
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	return resp.Msg.Payment
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code = %v, want %v (err: %v)", got, want, err)
	}
}
