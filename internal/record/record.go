// Package record реализует хранилище записей: синхронное отображение строкового
// ключа в сериализованное JSON-значение. Формат ключей повторяет исходный формат
// данных и считается долговременным: список счетов, журналы операций по счетам,
// снимок активной сессии. Атомарность затрагивает только одну запись; согласованность
// между связанными ключами хранилище не гарантирует.
package record

import "context"

// Ключи хранилища. AccountTransactionsKey строится от идентификатора счёта.
const (
	UsersKey              = "bank_users"
	SessionKey            = "current_user"
	ActiveTransactionsKey = "bank_transactions"
)

// AccountTransactionsKey возвращает ключ журнала операций указанного счёта.
func AccountTransactionsKey(accountID string) string {
	return accountID + "_transactions"
}

// Store описывает контракт хранилища записей. Read возвращает found=false для
// отсутствующего ключа, Write заменяет прежнее значение целиком, Remove удаляет
// запись и не считает отсутствие ключа ошибкой.
type Store interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
