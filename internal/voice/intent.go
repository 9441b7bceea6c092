// Package voice отображает распознанные голосовые команды в фиксированный набор
// намерений. Пакет не знает ничего о счетах и сессиях: распознанная фраза
// приходит непрозрачной строкой, наружу уходят намерение и текст ответа для
// синтеза речи. Само распознавание и синтез остаются на уровне представления.
package voice

import "strings"

// Intent — одно из поддерживаемых намерений голосового интерфейса.
type Intent string

const (
	IntentStartListening Intent = "start_listening"
	IntentStopListening  Intent = "stop_listening"
	IntentDeposit        Intent = "deposit"
	IntentWithdraw       Intent = "withdraw"
	IntentTransfer       Intent = "transfer"
	IntentBalance        Intent = "balance"
	IntentHelp           Intent = "help"
	IntentUnknown        Intent = "unknown"
)

const helpReply = "Available commands: check balance, make deposit, withdraw money, transfer funds."

// ParseCommand определяет намерение по вхождению ключевых слов — в том же
// порядке, что и исходный обработчик, поэтому "start listening" не считается
// командой перевода, хотя содержит слово из другого правила.
func ParseCommand(command string) Intent {
	c := strings.ToLower(command)

	switch {
	case strings.Contains(c, "start listening"):
		return IntentStartListening
	case strings.Contains(c, "stop listening"):
		return IntentStopListening
	case strings.Contains(c, "deposit"):
		return IntentDeposit
	case strings.Contains(c, "withdraw"):
		return IntentWithdraw
	case strings.Contains(c, "transfer"):
		return IntentTransfer
	case strings.Contains(c, "balance"):
		return IntentBalance
	case strings.Contains(c, "help"):
		return IntentHelp
	default:
		return IntentUnknown
	}
}

// Reply возвращает фразу, которую уровень представления озвучивает в ответ.
func Reply(intent Intent) string {
	switch intent {
	case IntentStartListening:
		return "Voice assistant activated. How can I help you?"
	case IntentStopListening:
		return "Voice assistant deactivated."
	case IntentDeposit:
		return "Opening deposit form for you."
	case IntentWithdraw:
		return "Opening withdraw form for you."
	case IntentTransfer:
		return "Opening transfer form for you."
	case IntentBalance:
		return "Showing your current balance."
	case IntentHelp:
		return helpReply
	default:
		return "Sorry, I did not understand that. Say help to list commands."
	}
}
