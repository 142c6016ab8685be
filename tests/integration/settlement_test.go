package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/dto"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/handler"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/repository/postgres"
	redisrepo "github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/repository/redis"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	infraredis "github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/redis"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
	"github.com/mikey2shiesty/ZapSplit-sub002/tests/testutil"
)

func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	txManager := postgres.NewTxManager(pool)
	splitRepo := postgres.NewSplitRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)

	splitUC := usecase.NewSplitUseCase(txManager, splitRepo, participantRepo, paymentRepo, outboxRepo, idGen).
		WithCache(cache)
	settlementUC := usecase.NewSettlementUseCase(txManager, splitRepo, participantRepo, paymentRepo, outboxRepo, idGen).
		WithCache(cache).
		WithRetrier(postgres.NewRetrier())
	balanceUC := usecase.NewBalanceUseCase(balanceRepo, cache, 0)
	feeUC := usecase.NewFeeUseCase(domain.FeeSchedule{})

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		SplitHandler:   handler.NewSplitHandler(splitUC),
		PaymentHandler: handler.NewPaymentHandler(settlementUC),
		FeeHandler:     handler.NewFeeHandler(feeUC),
		BalanceHandler: handler.NewBalanceHandler(balanceUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
	})
}

func createSplit(t *testing.T, router http.Handler, req dto.CreateSplitRequest) dto.SplitResponse {
	t.Helper()

	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/splits/", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("create split returned %d: %s", w.Code, w.Body.String())
	}

	var resp dto.SplitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode split response: %v", err)
	}
	return resp
}

func recordPayment(t *testing.T, router http.Handler, splitID string, req dto.RecordPaymentRequest) (int, dto.SettlementResponse) {
	t.Helper()

	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/splits/"+splitID+"/payments", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	var resp dto.SettlementResponse
	if w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode settlement response: %v", err)
		}
	}
	return w.Code, resp
}

func TestSettlementLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	split := createSplit(t, router, dto.CreateSplitRequest{
		CreatorID:      "alice",
		Title:          "Team dinner",
		AmountCents:    10000,
		Currency:       "USD",
		Strategy:       "equal",
		ParticipantIDs: []string{"alice", "bob", "carol"},
	})

	if split.Status != "active" || len(split.Participants) != 3 {
		t.Fatalf("unexpected split: %+v", split)
	}
	if split.Participants[0].AmountOwedCents != 3334 {
		t.Fatalf("expected first share to absorb the remainder, got %d", split.Participants[0].AmountOwedCents)
	}

	// Partial participant payment.
	code, result := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "bob",
		AmountCents:    2000,
		Currency:       "USD",
		IdempotencyKey: "pay-bob-1",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if result.AppliedCents != 2000 || result.RemainingCents != 8000 {
		t.Fatalf("unexpected settlement: %+v", result)
	}

	// Replay of the same event is a no-op.
	code, replay := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "bob",
		AmountCents:    2000,
		Currency:       "USD",
		IdempotencyKey: "pay-bob-1",
	})
	if code != http.StatusOK || !replay.Duplicate {
		t.Fatalf("expected idempotent replay, got code %d, %+v", code, replay)
	}
	if replay.RemainingCents != 8000 {
		t.Fatalf("replay must not change the remaining amount, got %d", replay.RemainingCents)
	}

	// An anonymous web payment covers the rest and completes the split.
	code, final := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		PayerIdentity:  "link-visitor-7",
		AmountCents:    8000,
		Currency:       "USD",
		IdempotencyKey: "pay-web-1",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if !final.Completed || final.RemainingCents != 0 || final.Split.Status != "completed" {
		t.Fatalf("expected completed split, got %+v", final)
	}

	// No further state transitions once completed, but audit recording still works.
	code, late := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "carol",
		AmountCents:    500,
		Currency:       "USD",
		IdempotencyKey: "pay-carol-late",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected late payment to be recorded, got %d", code)
	}
	if late.Completed || late.Split.Status != "completed" {
		t.Fatalf("late payment must not re-complete the split: %+v", late)
	}
}

func TestCancelRejectsFurtherPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	split := createSplit(t, router, dto.CreateSplitRequest{
		CreatorID:      "alice",
		Title:          "Cancelled plans",
		AmountCents:    6000,
		Currency:       "USD",
		Strategy:       "equal",
		ParticipantIDs: []string{"alice", "bob"},
	})

	// Only the creator may cancel.
	body, _ := json.Marshal(dto.CancelSplitRequest{RequesterID: "bob"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/splits/"+split.ID+"/cancel", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-creator, got %d", w.Code)
	}

	body, _ = json.Marshal(dto.CancelSplitRequest{RequesterID: "alice"})
	r = httptest.NewRequest(http.MethodPost, "/api/v1/splits/"+split.ID+"/cancel", bytes.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for creator cancel, got %d: %s", w.Code, w.Body.String())
	}

	code, _ := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "bob",
		AmountCents:    1000,
		Currency:       "USD",
		IdempotencyKey: "pay-after-cancel",
	})
	if code != http.StatusConflict {
		t.Fatalf("expected 409 after cancellation, got %d", code)
	}
}

func TestBalanceReflectsSettlement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	split := createSplit(t, router, dto.CreateSplitRequest{
		CreatorID:      "alice",
		Title:          "Groceries",
		AmountCents:    9000,
		Currency:       "USD",
		Strategy:       "equal",
		ParticipantIDs: []string{"alice", "bob", "carol"},
	})

	code, _ := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "bob",
		AmountCents:    1000,
		Currency:       "USD",
		IdempotencyKey: "pay-bob-groceries",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/bob/balance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary usecase.BalanceSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode balance: %v", err)
	}
	if len(summary.Balances) != 1 {
		t.Fatalf("expected one currency, got %+v", summary.Balances)
	}
	if summary.Balances[0].OwedCents != 2000 {
		t.Fatalf("bob owes 3000 minus the 1000 paid, got %d", summary.Balances[0].OwedCents)
	}
}

func getBalance(t *testing.T, router http.Handler, userID string) usecase.BalanceSummary {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/balance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("balance returned %d: %s", w.Code, w.Body.String())
	}

	var summary usecase.BalanceSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode balance: %v", err)
	}
	return summary
}

func TestWebPaymentReducesCreatorReceivable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	split := createSplit(t, router, dto.CreateSplitRequest{
		CreatorID:      "alice",
		Title:          "Cabin weekend",
		AmountCents:    9000,
		Currency:       "USD",
		Strategy:       "equal",
		ParticipantIDs: []string{"alice", "bob", "carol"},
	})

	// The receivable is the split-level remaining, so it starts at the
	// full total.
	before := getBalance(t, router, "alice")
	if len(before.Balances) != 1 || before.Balances[0].OwedToCents != 9000 {
		t.Fatalf("expected alice owed 9000, got %+v", before.Balances)
	}

	// An anonymous web payment has no participant row but still reduces
	// what the creator is waiting to collect.
	code, _ := recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		PayerIdentity:  "stripe:ch_1",
		AmountCents:    2500,
		Currency:       "USD",
		IdempotencyKey: "web-cabin-1",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	after := getBalance(t, router, "alice")
	if len(after.Balances) != 1 || after.Balances[0].OwedToCents != 6500 {
		t.Fatalf("expected alice owed 6500 after web payment, got %+v", after.Balances)
	}

	// A participant payment moves the same receivable through the other
	// channel.
	code, _ = recordPayment(t, router, split.ID, dto.RecordPaymentRequest{
		UserID:         "bob",
		AmountCents:    1000,
		Currency:       "USD",
		IdempotencyKey: "bob-cabin-1",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	final := getBalance(t, router, "alice")
	if final.Balances[0].OwedToCents != 5500 {
		t.Fatalf("expected alice owed 5500 after both channels, got %+v", final.Balances)
	}
}
