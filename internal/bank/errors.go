package bank

import "errors"

// Ошибки уровня доменной логики. Обработчики HTTP транслируют их в статусы
// ответа, а сервис дополнительно сохраняет текст последней ошибки для
// пассивного отображения на уровне представления.
var (
	// ErrInvalidEmail возвращается, если адрес не проходит базовую проверку формата.
	ErrInvalidEmail = errors.New("please enter a valid email address")
	// ErrShortPassword возвращается при пароле длиной 5 символов и меньше.
	ErrShortPassword = errors.New("password must be more than 5 characters")
	// ErrAccountExists возвращается при повторной регистрации email (без учёта регистра).
	ErrAccountExists = errors.New("an account already exists with this email")
	// ErrAccountNotFound возвращается при входе с незарегистрированным email.
	ErrAccountNotFound = errors.New("no account found with this email, please register first")
	// ErrWrongPassword возвращается при несовпадении секрета.
	ErrWrongPassword = errors.New("incorrect password, please try again")
	// ErrInvalidAmount возвращается для операций с неположительной суммой.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance возвращается, если списание превышает баланс.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNoSession возвращается для операций, требующих активной сессии.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidPayee возвращается, если у получателя не заполнены обязательные атрибуты.
	ErrInvalidPayee = errors.New("payee is incomplete")
)
