package player

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrInvalidStake      = errors.New("invalid_stake")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrItemNotFound      = errors.New("item_not_found")
)
