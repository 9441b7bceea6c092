package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mmeshcher/voicebank-system/internal/bank"
	"github.com/mmeshcher/voicebank-system/internal/middleware"
	"github.com/mmeshcher/voicebank-system/internal/model"
)

type stubService struct {
	registerAccount *model.Account
	registerErr     error

	loginSession *model.Session
	loginErr     error

	logoutErr error

	depositErr  error
	withdrawErr error

	transferErr   error
	transferPayee model.Payee

	session *model.Session

	transactions []model.Transaction

	lastError string
	cleared   bool
}

func (s *stubService) Register(ctx context.Context, email, password, name string) (*model.Account, error) {
	return s.registerAccount, s.registerErr
}

func (s *stubService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	return s.loginSession, s.loginErr
}

func (s *stubService) Logout(ctx context.Context) error {
	return s.logoutErr
}

func (s *stubService) Deposit(ctx context.Context, amount float64, description string) error {
	return s.depositErr
}

func (s *stubService) Withdraw(ctx context.Context, amount float64, description string) error {
	return s.withdrawErr
}

func (s *stubService) Transfer(ctx context.Context, amount float64, payee model.Payee) error {
	s.transferPayee = payee
	return s.transferErr
}

func (s *stubService) Session() (*model.Session, bool) {
	if s.session == nil {
		return nil, false
	}
	return s.session, true
}

func (s *stubService) Transactions() []model.Transaction {
	return s.transactions
}

func (s *stubService) LastError() string { return s.lastError }

func (s *stubService) ClearError() { s.cleared = true }

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, logger, auth)
}

// authedRequest снабжает запрос cookie авторизации для счёта активной сессии.
func authedRequest(t *testing.T, h *Handler, method, target string, body []byte, accountID string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.authMiddleware.SetAuthCookie(rec, accountID)
	req.AddCookie(rec.Result().Cookies()[0])

	return req
}

func TestRegister_Success(t *testing.T) {
	svc := &stubService{
		registerAccount: &model.Account{ID: "acc-1", Email: "a@x.com"},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(registerRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Name:     "Ann",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp map[string]bool
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("response success = false, want true")
	}
}

func TestRegister_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "conflict", err: bank.ErrAccountExists, want: http.StatusConflict},
		{name: "bad email", err: bank.ErrInvalidEmail, want: http.StatusBadRequest},
		{name: "short password", err: bank.ErrShortPassword, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{registerErr: tt.err}
			h := newTestHandler(t, svc)

			body, _ := json.Marshal(registerRequest{Email: "a@x.com", Password: "secret1", Name: "Ann"})
			req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Result().StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", rec.Result().StatusCode, tt.want)
			}
		})
	}
}

func TestLogin_SetsCookieAndReturnsSession(t *testing.T) {
	svc := &stubService{
		loginSession: &model.Session{Account: model.Account{
			ID:      "acc-1",
			Email:   "a@x.com",
			Balance: 60,
		}},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{Email: "a@x.com", Password: "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if len(res.Cookies()) == 0 {
		t.Fatalf("login must set the auth cookie")
	}

	var resp sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Balance != 60 {
		t.Fatalf("unexpected session response: %+v", resp)
	}
}

func TestLogin_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown email", err: bank.ErrAccountNotFound, want: http.StatusNotFound},
		{name: "wrong password", err: bank.ErrWrongPassword, want: http.StatusUnauthorized},
		{name: "storage failure", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{loginErr: tt.err}
			h := newTestHandler(t, svc)

			body, _ := json.Marshal(loginRequest{Email: "a@x.com", Password: "secret1"})
			req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Result().StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", rec.Result().StatusCode, tt.want)
			}
		})
	}
}

func TestGetBalance_RequiresMatchingSession(t *testing.T) {
	svc := &stubService{
		session: &model.Session{Account: model.Account{ID: "acc-1", Balance: 100}},
	}
	h := newTestHandler(t, svc)

	// cookie чужого счёта: сессию вытеснил более поздний вход
	req := authedRequest(t, h, http.MethodGet, "/api/user/balance", nil, "acc-2")
	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.GetBalance)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnauthorized)
	}

	req = authedRequest(t, h, http.MethodGet, "/api/user/balance", nil, "acc-1")
	rec = httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.GetBalance)).ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Balance != 100 {
		t.Fatalf("balance = %v, want 100", resp.Balance)
	}
}

func TestGetTransactions_NoContent(t *testing.T) {
	svc := &stubService{
		session:      &model.Session{Account: model.Account{ID: "acc-1"}},
		transactions: []model.Transaction{},
	}
	h := newTestHandler(t, svc)

	req := authedRequest(t, h, http.MethodGet, "/api/user/transactions", nil, "acc-1")
	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.GetTransactions)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNoContent)
	}
}

func TestWithdraw_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: http.StatusOK},
		{name: "bad amount", err: bank.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "insufficient", err: bank.ErrInsufficientBalance, want: http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				session:     &model.Session{Account: model.Account{ID: "acc-1"}},
				withdrawErr: tt.err,
			}
			h := newTestHandler(t, svc)

			body, _ := json.Marshal(amountRequest{Amount: 50, Description: "rent"})
			req := authedRequest(t, h, http.MethodPost, "/api/user/withdraw", body, "acc-1")
			rec := httptest.NewRecorder()
			h.authMiddleware.Middleware(http.HandlerFunc(h.Withdraw)).ServeHTTP(rec, req)

			if rec.Result().StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", rec.Result().StatusCode, tt.want)
			}
		})
	}
}

func TestTransfer_PassesStructuredPayee(t *testing.T) {
	svc := &stubService{
		session: &model.Session{Account: model.Account{ID: "acc-1"}},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(transferRequest{
		Amount: 25,
		Payee:  model.Payee{Kind: model.PayeeMobile, Operator: "TMOBILE", Number: "5551234"},
	})
	req := authedRequest(t, h, http.MethodPost, "/api/user/transfer", body, "acc-1")
	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.Transfer)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusOK)
	}
	if svc.transferPayee.Kind != model.PayeeMobile || svc.transferPayee.Number != "5551234" {
		t.Fatalf("payee was not passed through: %+v", svc.transferPayee)
	}
}

func TestErrorSlotEndpoints(t *testing.T) {
	svc := &stubService{lastError: "insufficient balance"}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/user/error", nil)
	rec := httptest.NewRecorder()
	h.GetError(rec, req)

	var resp map[string]string
	if err := json.NewDecoder(rec.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "insufficient balance" {
		t.Fatalf("error = %q, want %q", resp["error"], "insufficient balance")
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/user/error", nil)
	rec = httptest.NewRecorder()
	h.ClearError(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusOK)
	}
	if !svc.cleared {
		t.Fatalf("ClearError was not called on the service")
	}
}

func TestVoiceCommand(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body, _ := json.Marshal(voiceRequest{Command: "please make a deposit"})
	req := httptest.NewRequest(http.MethodPost, "/api/voice/command", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.VoiceCommand(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp voiceResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Intent != "deposit" {
		t.Fatalf("intent = %q, want deposit", resp.Intent)
	}
	if resp.Reply == "" {
		t.Fatalf("reply must not be empty")
	}
}
