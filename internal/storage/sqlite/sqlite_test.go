package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestGroup(t *testing.T, store *SQLiteStore, name string, memberIDs ...string) *models.Group {
	t.Helper()

	group := &models.Group{Name: name, OwnerID: memberIDs[0]}
	for _, id := range memberIDs {
		group.Members = append(group.Members, models.Member{ID: id, DisplayName: "User " + id})
	}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamps", func(t *testing.T) {
		group := createTestGroup(t, store, "Roommates", "alice", "bob")

		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		for _, m := range group.Members {
			if m.JoinedAt != group.CreatedAt {
				t.Errorf("member %s JoinedAt = %d, want %d", m.ID, m.JoinedAt, group.CreatedAt)
			}
		}
	})

	t.Run("GetGroup keeps member order", func(t *testing.T) {
		original := createTestGroup(t, store, "Trip", "carol", "alice", "bob")

		retrieved, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != "Trip" || retrieved.OwnerID != "carol" {
			t.Errorf("got %s owned by %s", retrieved.Name, retrieved.OwnerID)
		}
		ids := retrieved.MemberIDs()
		want := []string{"carol", "alice", "bob"}
		if len(ids) != len(want) {
			t.Fatalf("members = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("members[%d] = %s, want %s", i, ids[i], want[i])
			}
		}
		if retrieved.Members[0].DisplayName != "User carol" {
			t.Errorf("display name = %q", retrieved.Members[0].DisplayName)
		}
	})

	t.Run("GetGroup returns ErrNotFound for nonexistent group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddGroupMember appends once", func(t *testing.T) {
		group := createTestGroup(t, store, "Flat", "dan")

		if err := store.AddGroupMember(ctx, group.ID, models.Member{ID: "erin", DisplayName: "Erin"}); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}
		if err := store.AddGroupMember(ctx, group.ID, models.Member{ID: "erin", DisplayName: "Erin"}); err != nil {
			t.Fatalf("second AddGroupMember failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Members) != 2 || retrieved.Members[1].ID != "erin" {
			t.Errorf("members = %v, want [dan erin]", retrieved.MemberIDs())
		}
	})

	t.Run("AddGroupMember to missing group", func(t *testing.T) {
		err := store.AddGroupMember(ctx, "missing", models.Member{ID: "erin"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroupsByMember only returns own groups", func(t *testing.T) {
		createTestGroup(t, store, "Solo", "zed")
		createTestGroup(t, store, "Pair", "zed", "yan")

		groups, err := store.ListGroupsByMember(ctx, "yan")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].Name != "Pair" {
			t.Fatalf("groups for yan = %+v, want [Pair]", groups)
		}
		if len(groups[0].Members) != 2 {
			t.Errorf("expected members to be loaded, got %v", groups[0].Members)
		}

		groups, err = store.ListGroupsByMember(ctx, "zed")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 2 {
			t.Errorf("groups for zed = %d, want 2", len(groups))
		}
	})
}

func TestSQLiteStore_ExpensesAndPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store, "Trip", "alice", "bob")

	t.Run("expense round trip keeps cents exact", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			PayerID:     "alice",
			Value:       19.99,
			Category:    "food",
			Description: "Pizza",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" || expense.CreatedAt == 0 {
			t.Fatalf("Expected ID and CreatedAt to be set, got %+v", expense)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Value != 19.99 || got.Category != "food" || got.Description != "Pizza" || got.PayerID != "alice" {
			t.Errorf("GetExpense = %+v", got)
		}
	})

	t.Run("payments are listed per group", func(t *testing.T) {
		for _, v := range []float64{10, 5.5} {
			p := &models.Payment{GroupID: group.ID, PayerID: "bob", TargetID: "alice", Value: v}
			if err := store.CreatePayment(ctx, p); err != nil {
				t.Fatalf("CreatePayment failed: %v", err)
			}
		}

		payments, err := store.ListPaymentsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPaymentsByGroup failed: %v", err)
		}
		if len(payments) != 2 || payments[0].Value != 10 || payments[1].Value != 5.5 {
			t.Errorf("payments = %+v", payments)
		}
	})

	t.Run("payment to self is rejected by the schema", func(t *testing.T) {
		p := &models.Payment{GroupID: group.ID, PayerID: "bob", TargetID: "bob", Value: 1}
		if err := store.CreatePayment(ctx, p); err == nil {
			t.Error("Expected error for self payment")
		}
	})

	t.Run("expense for missing group violates foreign key", func(t *testing.T) {
		e := &models.Expense{GroupID: "missing", PayerID: "alice", Value: 1}
		if err := store.CreateExpense(ctx, e); err == nil {
			t.Error("Expected foreign key error")
		}
	})

	t.Run("values beyond int64 cents are not stored", func(t *testing.T) {
		e := &models.Expense{GroupID: group.ID, PayerID: "alice", Value: 2e17}
		if err := store.CreateExpense(ctx, e); !errors.Is(err, calculator.ErrAmountOverflow) {
			t.Errorf("CreateExpense error = %v, want ErrAmountOverflow", err)
		}
		p := &models.Payment{GroupID: group.ID, PayerID: "alice", TargetID: "bob", Value: -2e17}
		if err := store.CreatePayment(ctx, p); !errors.Is(err, calculator.ErrAmountOverflow) {
			t.Errorf("CreatePayment error = %v, want ErrAmountOverflow", err)
		}
	})

	t.Run("delete expense and payment", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil || len(expenses) == 0 {
			t.Fatalf("ListExpensesByGroup = %v, %v", expenses, err)
		}
		if err := store.DeleteExpense(ctx, expenses[0].ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expenses[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteExpense error = %v, want ErrNotFound", err)
		}

		payments, _ := store.ListPaymentsByGroup(ctx, group.ID)
		if err := store.DeletePayment(ctx, payments[0].ID); err != nil {
			t.Fatalf("DeletePayment failed: %v", err)
		}
		if _, err := store.GetPayment(ctx, payments[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPayment after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		payments, err := store.ListPaymentsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPaymentsByGroup failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("expected payments to cascade, got %d", len(payments))
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteGroup error = %v, want ErrNotFound", err)
		}
	})
}
