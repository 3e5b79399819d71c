package bank

import (
	"errors"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountAlreadyExists = errors.New("account with this ID already exists")
