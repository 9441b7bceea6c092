package model

import "fmt"

// PayeeKind перечисляет поддерживаемые виды получателей перевода.
type PayeeKind string

const (
	PayeePerson      PayeeKind = "person"
	PayeeMobile      PayeeKind = "mobile"
	PayeeElectricity PayeeKind = "electricity"
	PayeeInternet    PayeeKind = "internet"
	PayeeTV          PayeeKind = "tv"
	PayeeRent        PayeeKind = "rent"
)

// Payee — структурный получатель перевода или платежа по счёту: уровень
// представления передаёт вид и атрибуты вместо префиксов в свободном тексте,
// а строковая форма синтезируется только при записи в журнал. Для PayeePerson
// заполняется Recipient, для PayeeMobile — Operator и Number, для остальных
// видов — BillNumber.
type Payee struct {
	Kind       PayeeKind `json:"kind"`
	Recipient  string    `json:"recipient,omitempty"`
	Operator   string    `json:"operator,omitempty"`
	Number     string    `json:"number,omitempty"`
	BillNumber string    `json:"billNumber,omitempty"`
}

// Valid сообщает, заполнены ли обязательные атрибуты для данного вида получателя.
func (p Payee) Valid() bool {
	switch p.Kind {
	case PayeePerson:
		return p.Recipient != ""
	case PayeeMobile:
		return p.Operator != "" && p.Number != ""
	case PayeeElectricity, PayeeInternet, PayeeTV, PayeeRent:
		return p.BillNumber != ""
	default:
		return false
	}
}

// Label возвращает метку получателя в исходном строковом формате журнала.
func (p Payee) Label() string {
	switch p.Kind {
	case PayeeMobile:
		return fmt.Sprintf("MOBILE-%s-%s", p.Operator, p.Number)
	case PayeeElectricity:
		return "ELECTRICITY-" + p.BillNumber
	case PayeeInternet:
		return "INTERNET-" + p.BillNumber
	case PayeeTV:
		return "TV-" + p.BillNumber
	case PayeeRent:
		return "RENT-" + p.BillNumber
	default:
		return p.Recipient
	}
}

// Description синтезирует текст операции для журнала: "Transfer to {метка}".
func (p Payee) Description() string {
	return "Transfer to " + p.Label()
}
