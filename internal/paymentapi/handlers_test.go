package paymentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

func TestMain(m *testing.M) {
	obs.InitLogger("payment-service-test")
	os.Exit(m.Run())
}

type memPayments struct {
	payments []model.Payment
	nextID   uint
}

func newMemPayments() *memPayments { return &memPayments{nextID: 1} }

func (s *memPayments) Create(_ context.Context, p *model.Payment) error {
	p.ID = s.nextID
	s.nextID++
	s.payments = append(s.payments, *p)
	return nil
}

func (s *memPayments) Get(_ context.Context, id uint) (model.Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Payment{}, store.ErrNotFound
}

func (s *memPayments) List(_ context.Context, f store.PaymentFilter, page model.PageRequest) ([]model.Payment, int64, error) {
	var matched []model.Payment
	for _, p := range s.payments {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memPayments) ListByOrder(_ context.Context, orderID uint) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPayments) MarkCompleted(_ context.Context, id uint) error {
	for i := range s.payments {
		if s.payments[i].ID == id {
			now := time.Now()
			s.payments[i].Status = model.PaymentStatusCompleted
			s.payments[i].VerifiedAt = &now
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeOrderUpdater struct {
	calls []struct {
		ID     uint
		Status model.OrderStatus
	}
	err error
}

func (f *fakeOrderUpdater) UpdateStatus(_ context.Context, id uint, status model.OrderStatus) error {
	f.calls = append(f.calls, struct {
		ID     uint
		Status model.OrderStatus
	}{id, status})
	return f.err
}

func newTestApp() (*App, *memPayments, *fakeOrderUpdater) {
	st := newMemPayments()
	orders := &fakeOrderUpdater{}
	return NewApp(config.Config{}, st, orders), st, orders
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var paymentReferencePattern = regexp.MustCompile(`^PAY-\d+-[0-9A-F]{9}$`)

func TestCreate(t *testing.T) {
	app, st, _ := newTestApp()
	h := NewRouter(app)

	rec := doRequest(t, h, http.MethodPost, "/payments", map[string]any{
		"userId":        7,
		"orderId":       3,
		"amount":        109800,
		"paymentMethod": "bank_transfer",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Payment      model.Payment `json:"payment"`
		Instructions struct {
			PaymentReference string `json:"paymentReference"`
		} `json:"instructions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Payment.Status != model.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", resp.Payment.Status)
	}
	if !paymentReferencePattern.MatchString(resp.Payment.PaymentReference) {
		t.Fatalf("malformed payment reference: %q", resp.Payment.PaymentReference)
	}
	if resp.Instructions.PaymentReference != resp.Payment.PaymentReference {
		t.Fatal("instructions must repeat the payment reference")
	}
	if len(st.payments) != 1 {
		t.Fatalf("expected 1 stored payment, got %d", len(st.payments))
	}
}

func TestCreateValidation(t *testing.T) {
	app, _, _ := newTestApp()
	h := NewRouter(app)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing userId", map[string]any{"orderId": 3, "amount": 100, "paymentMethod": "credit_card"}},
		{"missing orderId", map[string]any{"userId": 7, "amount": 100, "paymentMethod": "credit_card"}},
		{"zero amount", map[string]any{"userId": 7, "orderId": 3, "amount": 0, "paymentMethod": "credit_card"}},
		{"unknown method", map[string]any{"userId": 7, "orderId": 3, "amount": 100, "paymentMethod": "cash"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/payments", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func seedPayment(st *memPayments, ref string) model.Payment {
	p := model.Payment{
		UserID:           7,
		OrderID:          3,
		Amount:           decimal.NewFromInt(109800),
		PaymentMethod:    "credit_card",
		PaymentReference: ref,
		Status:           model.PaymentStatusPending,
	}
	_ = st.Create(context.Background(), &p)
	return p
}

func TestVerify(t *testing.T) {
	app, st, orders := newTestApp()
	h := NewRouter(app)
	p := seedPayment(st, "PAY-1700000000000-ABCDEF123")

	rec := doRequest(t, h, http.MethodPost, "/payments/1/verify",
		map[string]string{"paymentReference": p.PaymentReference})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if st.payments[0].Status != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", st.payments[0].Status)
	}
	if st.payments[0].VerifiedAt == nil {
		t.Fatal("expected verified_at to be set")
	}
	if len(orders.calls) != 1 || orders.calls[0].ID != 3 || orders.calls[0].Status != model.OrderStatusPaid {
		t.Fatalf("expected order 3 flipped to paid, got %+v", orders.calls)
	}
}

func TestVerifyWrongReference(t *testing.T) {
	app, st, orders := newTestApp()
	h := NewRouter(app)
	seedPayment(st, "PAY-1700000000000-ABCDEF123")

	rec := doRequest(t, h, http.MethodPost, "/payments/1/verify",
		map[string]string{"paymentReference": "PAY-0-WRONGREF0"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Invalid payment reference" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
	if st.payments[0].Status != model.PaymentStatusPending {
		t.Fatalf("payment must stay pending, got %s", st.payments[0].Status)
	}
	if len(orders.calls) != 0 {
		t.Fatal("order service must not be called on a failed verification")
	}
}

func TestVerifyOnlyOnce(t *testing.T) {
	app, st, orders := newTestApp()
	h := NewRouter(app)
	p := seedPayment(st, "PAY-1700000000000-ABCDEF123")

	body := map[string]string{"paymentReference": p.PaymentReference}
	if rec := doRequest(t, h, http.MethodPost, "/payments/1/verify", body); rec.Code != http.StatusOK {
		t.Fatalf("first verify: expected 200, got %d", rec.Code)
	}
	rec := doRequest(t, h, http.MethodPost, "/payments/1/verify", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second verify: expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Payment already verified" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
	if len(orders.calls) != 1 {
		t.Fatalf("order callback must fire exactly once, got %d", len(orders.calls))
	}
}

func TestVerifyUnknownPayment(t *testing.T) {
	app, _, _ := newTestApp()
	h := NewRouter(app)

	rec := doRequest(t, h, http.MethodPost, "/payments/99/verify",
		map[string]string{"paymentReference": "PAY-0-ANYTHING0"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestVerifySucceedsWhenOrderCallbackFails(t *testing.T) {
	app, st, orders := newTestApp()
	h := NewRouter(app)
	p := seedPayment(st, "PAY-1700000000000-ABCDEF123")
	orders.err = errors.New("order service unreachable")

	rec := doRequest(t, h, http.MethodPost, "/payments/1/verify",
		map[string]string{"paymentReference": p.PaymentReference})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite callback failure, got %d: %s", rec.Code, rec.Body.String())
	}
	if st.payments[0].Status != model.PaymentStatusCompleted {
		t.Fatalf("payment must still complete, got %s", st.payments[0].Status)
	}
}

func TestGetAndListByOrder(t *testing.T) {
	app, st, _ := newTestApp()
	h := NewRouter(app)
	seedPayment(st, "PAY-1700000000000-AAAAAAAA1")
	seedPayment(st, "PAY-1700000000001-BBBBBBBB2")

	rec := doRequest(t, h, http.MethodGet, "/payments/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/payments/order/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payments []model.Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &payments); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments for order 3, got %d", len(payments))
	}

	rec = doRequest(t, h, http.MethodGet, "/payments/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	app, st, _ := newTestApp()
	h := NewRouter(app)
	seedPayment(st, "PAY-1700000000000-AAAAAAAA1")
	seedPayment(st, "PAY-1700000000001-BBBBBBBB2")
	_ = st.MarkCompleted(context.Background(), 1)

	rec := doRequest(t, h, http.MethodGet, "/payments?status=completed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Payments   []model.Payment  `json:"payments"`
		Pagination model.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Payments) != 1 || resp.Payments[0].ID != 1 {
		t.Fatalf("unexpected filtered listing: %+v", resp.Payments)
	}
}
