package validation

import "regexp"

// Шаблон повторяет исходную проверку: непустая локальная часть, один символ @,
// домен с точкой, без пробелов.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail проверяет адрес электронной почты по базовому шаблону.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
