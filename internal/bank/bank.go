// Package bank реализует бизнес-логику демонстрационного банковского сервиса:
// жизненный цикл счёта и сессии, операции по балансу и журнал операций.
// Все изменения состояния сериализуются одним мьютексом; одновременно активна
// не более одной сессии на процесс. Секрет хранится в открытом виде — это
// сознательное ограничение, унаследованное от исходного формата данных.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/voicebank-system/internal/model"
	"github.com/mmeshcher/voicebank-system/internal/record"
	"github.com/mmeshcher/voicebank-system/internal/validation"
)

// humanTimeLayout — человекочитаемый формат меток времени журнала и входа.
const humanTimeLayout = "2006-01-02 15:04:05"

// Service содержит бизнес-логику счёта и сессии поверх хранилища записей.
type Service struct {
	store      record.Store
	loginDelay time.Duration

	mu           sync.Mutex
	session      *model.Session
	transactions []model.Transaction
	lastError    string

	now func() time.Time
}

// NewService создаёт сервис поверх указанного хранилища. loginDelay имитирует
// сетевую задержку входа; ноль отключает её.
func NewService(store record.Store, loginDelay time.Duration) *Service {
	return &Service{
		store:      store,
		loginDelay: loginDelay,
		now:        time.Now,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Restore восстанавливает сессию и активный журнал, сохранённые прошлым
// запуском процесса. Отсутствие записей не является ошибкой.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.store.Read(ctx, record.SessionKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !found {
		return nil
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	s.session = &session

	transactions, err := s.readTransactions(ctx, record.ActiveTransactionsKey)
	if err != nil {
		return fmt.Errorf("restore transactions: %w", err)
	}
	s.transactions = transactions

	return nil
}

// Register регистрирует новый счёт. Вход при этом не выполняется.
func (s *Service) Register(ctx context.Context, email, password, name string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""

	if !validation.IsValidEmail(email) {
		return nil, s.fail(ErrInvalidEmail)
	}
	if len(password) <= 5 {
		return nil, s.fail(ErrShortPassword)
	}

	accounts, err := s.readAccounts(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	// Уникальность email проверяется линейным сканом, без ограничения в хранилище.
	lowered := strings.ToLower(email)
	for _, a := range accounts {
		if strings.ToLower(a.Email) == lowered {
			return nil, s.fail(ErrAccountExists)
		}
	}

	account := model.Account{
		ID:            uuid.NewString(),
		Email:         lowered,
		Password:      password,
		Name:          name,
		Balance:       0,
		AccountType:   model.AccountTypeSavings,
		AccountNumber: validation.GenerateAccountNumber(),
		RewardPoints:  0,
		LastActivity:  s.now().Format(time.RFC3339),
	}

	accounts = append(accounts, account)
	if err := s.writeJSON(ctx, record.UsersKey, accounts); err != nil {
		return nil, s.fail(err)
	}
	if err := s.writeJSON(ctx, record.AccountTransactionsKey(account.ID), []model.Transaction{}); err != nil {
		return nil, s.fail(err)
	}

	return &account, nil
}

// Login выполняет вход: после имитации сетевой задержки ищет счёт по email без
// учёта регистра, сверяет секрет и создаёт сессию без секрета в снимке.
// Журнал счёта загружается в активное представление.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if s.loginDelay > 0 {
		timer := time.NewTimer(s.loginDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""

	accounts, err := s.readAccounts(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	lowered := strings.ToLower(email)
	var account *model.Account
	for i := range accounts {
		if strings.ToLower(accounts[i].Email) == lowered {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, s.fail(ErrAccountNotFound)
	}
	if account.Password != password {
		return nil, s.fail(ErrWrongPassword)
	}

	authenticated := *account
	authenticated.LoginTime = s.now().Format(humanTimeLayout)
	authenticated.LastActivity = s.now().Format(humanTimeLayout)

	session := model.NewSession(authenticated)
	if err := s.writeJSON(ctx, record.SessionKey, session); err != nil {
		return nil, s.fail(err)
	}

	transactions, err := s.readTransactions(ctx, record.AccountTransactionsKey(account.ID))
	if err != nil {
		return nil, s.fail(err)
	}

	s.session = session
	s.transactions = transactions

	copied := *session
	return &copied, nil
}

// Logout уничтожает сессию и очищает активное представление журнала.
// Сохранённые записи счетов и журналов не затрагиваются.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, record.SessionKey); err != nil {
		return s.fail(err)
	}

	s.session = nil
	s.transactions = nil
	s.lastError = ""
	return nil
}

// Deposit увеличивает баланс активной сессии и добавляет кредитовую запись.
func (s *Service) Deposit(ctx context.Context, amount float64, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""

	if amount <= 0 {
		return s.fail(fmt.Errorf("deposit: %w", ErrInvalidAmount))
	}
	if s.session == nil {
		return s.fail(ErrNoSession)
	}

	if err := s.updateBalance(ctx, amount); err != nil {
		return s.fail(err)
	}
	if err := s.addTransaction(ctx, model.TransactionCredit, amount, description); err != nil {
		return s.fail(err)
	}
	return nil
}

// Withdraw уменьшает баланс активной сессии и добавляет дебетовую запись.
// Списание, превышающее баланс, отклоняется до каких-либо изменений.
func (s *Service) Withdraw(ctx context.Context, amount float64, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""

	return s.debit(ctx, "withdraw", amount, description)
}

// Transfer списывает сумму в пользу структурного получателя. По эффекту на
// баланс идентичен Withdraw; описание операции синтезируется из получателя.
func (s *Service) Transfer(ctx context.Context, amount float64, payee model.Payee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""

	if !payee.Valid() {
		return s.fail(ErrInvalidPayee)
	}
	return s.debit(ctx, "transfer", amount, payee.Description())
}

// debit — общий путь Withdraw и Transfer. Вызывается только под мьютексом.
func (s *Service) debit(ctx context.Context, op string, amount float64, description string) error {
	if amount <= 0 {
		return s.fail(fmt.Errorf("%s: %w", op, ErrInvalidAmount))
	}
	if s.session == nil {
		return s.fail(ErrNoSession)
	}
	if s.session.Balance < amount {
		return s.fail(ErrInsufficientBalance)
	}

	if err := s.updateBalance(ctx, -amount); err != nil {
		return s.fail(err)
	}
	if err := s.addTransaction(ctx, model.TransactionDebit, amount, description); err != nil {
		return s.fail(err)
	}
	return nil
}

// Session возвращает копию снимка активной сессии.
func (s *Service) Session() (*model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, false
	}
	copied := *s.session
	return &copied, true
}

// Transactions возвращает копию активного представления журнала, новые записи первыми.
func (s *Service) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// LastError возвращает текст последней ошибки для пассивного отображения.
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError сбрасывает сохранённый текст ошибки.
func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// fail запоминает текст ошибки и возвращает её вызывающему без изменений.
func (s *Service) fail(err error) error {
	s.lastError = err.Error()
	return err
}

// updateBalance изменяет баланс сессии на delta, начисляет floor(|delta|)
// бонусных баллов, обновляет метку активности и сохраняет снимок сессии.
// Запись счёта в bank_users при этом не переписывается — расхождение снимков
// унаследовано от исходного поведения и зафиксировано в DESIGN.md.
func (s *Service) updateBalance(ctx context.Context, delta float64) error {
	updated := *s.session
	updated.Balance += delta
	updated.RewardPoints += int(math.Floor(math.Abs(delta)))
	updated.LastActivity = s.now().Format(time.RFC3339)

	if err := s.writeJSON(ctx, record.SessionKey, &updated); err != nil {
		return err
	}

	s.session = &updated
	return nil
}

// addTransaction добавляет запись в начало журнала и сохраняет обе проекции:
// журнал счёта и активное представление целиком.
func (s *Service) addTransaction(ctx context.Context, kind model.TransactionKind, amount float64, description string) error {
	tx := model.Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        s.now().Format(humanTimeLayout),
	}

	updated := make([]model.Transaction, 0, len(s.transactions)+1)
	updated = append(updated, tx)
	updated = append(updated, s.transactions...)

	if err := s.writeJSON(ctx, record.AccountTransactionsKey(s.session.ID), updated); err != nil {
		return err
	}
	if err := s.writeJSON(ctx, record.ActiveTransactionsKey, updated); err != nil {
		return err
	}

	s.transactions = updated
	return nil
}

func (s *Service) readAccounts(ctx context.Context) ([]model.Account, error) {
	raw, found, err := s.store.Read(ctx, record.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !found {
		return nil, nil
	}

	var accounts []model.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) readTransactions(ctx context.Context, key string) ([]model.Transaction, error) {
	raw, found, err := s.store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	if !found {
		return nil, nil
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

func (s *Service) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.store.Write(ctx, key, raw); err != nil {
		return err
	}
	return nil
}
