package domain_money

import "errors"

var (
	ErrInvalidCurrency = errors.New("money: currency must be a 3-letter uppercase code")
	ErrInvalidAmount   = errors.New("money: amount must be a decimal string")
)
