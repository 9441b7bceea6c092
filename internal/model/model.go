// Package model содержит доменные сущности демонстрационного банковского сервиса.
package model

// AccountType описывает категорию счёта.
type AccountType string

const (
	AccountTypeSavings  AccountType = "savings"
	AccountTypeChecking AccountType = "checking"
)

// Account представляет зарегистрированного пользователя и состояние его счёта.
// Поле Password хранится в открытом виде: сервис демонстрационный и сознательно
// воспроизводит формат исходных данных без хеширования.
type Account struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Password      string      `json:"password,omitempty"`
	Name          string      `json:"name"`
	Balance       float64     `json:"balance"`
	AccountType   AccountType `json:"accountType"`
	AccountNumber string      `json:"accountNumber"`
	RewardPoints  int         `json:"rewardPoints"`
	LastActivity  string      `json:"lastActivity"`
	LoginTime     string      `json:"loginTime,omitempty"`
}

// Session — снимок аутентифицированного счёта без секрета.
// Одновременно активна не более одной сессии на процесс.
type Session struct {
	Account
}

// NewSession создаёт сессию из учётной записи, удаляя секрет из снимка.
func NewSession(a Account) *Session {
	a.Password = ""
	return &Session{Account: a}
}

// TransactionKind описывает направление операции по счёту.
type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

// Transaction — одна запись журнала операций. Сумма всегда положительна,
// направление задаётся полем Kind. Date — человекочитаемая строка, как в
// исходном формате данных, а не сортируемая метка времени.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}
