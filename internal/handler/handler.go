// Package handler содержит HTTP-обработчики API банковского сервиса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/voicebank-system/internal/bank"
	"github.com/mmeshcher/voicebank-system/internal/middleware"
	"github.com/mmeshcher/voicebank-system/internal/model"
	"github.com/mmeshcher/voicebank-system/internal/voice"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context) error
	Deposit(ctx context.Context, amount float64, description string) error
	Withdraw(ctx context.Context, amount float64, description string) error
	Transfer(ctx context.Context, amount float64, payee model.Payee) error
	Session() (*model.Session, bool)
	Transactions() []model.Transaction
	LastError() string
	ClearError()
}

// Handler реализует HTTP-обработчики API банковского сервиса.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register обрабатывает регистрацию нового счёта. Вход при этом не выполняется.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		switch {
		case errors.Is(err, bank.ErrAccountExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, bank.ErrInvalidEmail), errors.Is(err, bank.ErrShortPassword):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("register error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login выполняет вход и устанавливает cookie авторизации.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, bank.ErrAccountNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, bank.ErrWrongPassword):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			h.logger.Error("login error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.authMiddleware.SetAuthCookie(w, session.ID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponseFrom(session))
}

// Logout уничтожает сессию и сбрасывает cookie авторизации.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionForRequest(w, r); !ok {
		return
	}

	if err := h.service.Logout(r.Context()); err != nil {
		h.logger.Error("logout error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

type sessionResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Balance       float64 `json:"balance"`
	AccountType   string  `json:"accountType"`
	AccountNumber string  `json:"accountNumber"`
	RewardPoints  int     `json:"rewardPoints"`
	LoginTime     string  `json:"loginTime,omitempty"`
	LastActivity  string  `json:"lastActivity"`
}

func sessionResponseFrom(s *model.Session) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		Email:         s.Email,
		Name:          s.Name,
		Balance:       s.Balance,
		AccountType:   string(s.AccountType),
		AccountNumber: s.AccountNumber,
		RewardPoints:  s.RewardPoints,
		LoginTime:     s.LoginTime,
		LastActivity:  s.LastActivity,
	}
}

// GetBalance возвращает снимок активной сессии: баланс, баллы и реквизиты счёта.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionForRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sessionResponseFrom(session)); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type transactionResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// GetTransactions возвращает активное представление журнала, новые записи первыми.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionForRequest(w, r); !ok {
		return
	}

	transactions := h.service.Transactions()
	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, transactionResponse{
			ID:          tx.ID,
			Kind:        string(tx.Kind),
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        tx.Date,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type amountRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Deposit пополняет счёт активной сессии.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionForRequest(w, r); !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.Deposit(r.Context(), req.Amount, req.Description); err != nil {
		h.writeOperationError(w, err, "deposit")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Withdraw списывает средства со счёта активной сессии.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionForRequest(w, r); !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.Withdraw(r.Context(), req.Amount, req.Description); err != nil {
		h.writeOperationError(w, err, "withdraw")
		return
	}

	w.WriteHeader(http.StatusOK)
}

type transferRequest struct {
	Amount float64     `json:"amount"`
	Payee  model.Payee `json:"payee"`
}

// Transfer выполняет перевод или оплату счёта структурному получателю.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionForRequest(w, r); !ok {
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.Transfer(r.Context(), req.Amount, req.Payee); err != nil {
		h.writeOperationError(w, err, "transfer")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetError возвращает текст последней ошибки сервиса для пассивного отображения.
func (h *Handler) GetError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"error": h.service.LastError()})
}

// ClearError сбрасывает сохранённый текст ошибки.
func (h *Handler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.service.ClearError()
	w.WriteHeader(http.StatusOK)
}

type voiceRequest struct {
	Command string `json:"command"`
}

type voiceResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

// VoiceCommand отображает распознанную фразу в намерение и фразу для озвучивания.
func (h *Handler) VoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	intent := voice.ParseCommand(req.Command)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(voiceResponse{
		Intent: string(intent),
		Reply:  voice.Reply(intent),
	})
}

// sessionForRequest сопоставляет cookie запроса с активной сессией процесса.
// Cookie другого счёта означает, что его сессию вытеснил более поздний вход.
func (h *Handler) sessionForRequest(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}

	session, ok := h.service.Session()
	if !ok || session.ID != accountID {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}

	return session, true
}

func (h *Handler) writeOperationError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount), errors.Is(err, bank.ErrInvalidPayee):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, bank.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, bank.ErrNoSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.logger.Error(op+" error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
