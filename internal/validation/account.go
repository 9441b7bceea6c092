// Package validation содержит функции валидации входных данных.
package validation

import (
	"math/rand"
	"unicode"
)

const accountNumberLength = 10

// IsValidAccountNumber проверяет корректность номера счёта по алгоритму Луна.
func IsValidAccountNumber(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		ch := rune(number[i])
		if !unicode.IsDigit(ch) {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// GenerateAccountNumber возвращает десятизначный номер счёта с контрольной
// цифрой по алгоритму Луна. Глобальная уникальность не гарантируется.
func GenerateAccountNumber() string {
	digits := make([]byte, accountNumberLength)
	for i := 0; i < accountNumberLength-1; i++ {
		digits[i] = byte('0' + rand.Intn(10))
	}

	sum := 0
	double := true
	for i := accountNumberLength - 2; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	check := (10 - sum%10) % 10
	digits[accountNumberLength-1] = byte('0' + check)

	return string(digits)
}
