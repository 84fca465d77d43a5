package game

import "errors"

var (
	ErrInvalidStake      = errors.New("invalid_stake")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)
