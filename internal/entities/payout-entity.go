package entities

import (
	"fmt"
	"strings"
	"time"
)

type Payout struct {
	ID          int64
	Driver      string
	PayoutID    string
	DateCreated time.Time
	// Orders — список имен заказов-участников, хранится как строка,
	// разделенная запятыми (формат исторический, его читают отчеты).
	Orders      string
	TotalCash   float64
	TotalFees   float64
	TotalPayout float64
	Status      string
	DatePaid    *time.Time
}

// NewPayoutID выдает токен открываемой выплаты, производный от времени
// создания.
func NewPayoutID(t time.Time) string {
	return "PO-" + t.Format("20060102-1504")
}

// UniquePayoutID подбирает свободный токен выплаты: базовый от времени
// создания, при занятости — с числовым суффиксом. Занятый базовый токен
// возможен, когда выплату закрыли и следующую открыли в ту же минуту.
func UniquePayoutID(t time.Time, taken func(string) bool) string {
	base := NewPayoutID(t)
	id := base
	for n := 2; taken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// SplitOrderList разбирает строку участников выплаты.
func SplitOrderList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinOrderList собирает строку участников обратно.
func JoinOrderList(orders []string) string {
	return strings.Join(orders, ", ")
}

// AppendOrder добавляет заказ в список участников.
func AppendOrder(orders string, name string) string {
	if orders == "" {
		return name
	}
	return orders + ", " + name
}

// RemoveOrder убирает заказ из списка участников. Второе значение —
// нашелся ли он вообще.
func RemoveOrder(orders string, name string) (string, bool) {
	list := SplitOrderList(orders)
	for i, o := range list {
		if o == name {
			return JoinOrderList(append(list[:i], list[i+1:]...)), true
		}
	}
	return orders, false
}
