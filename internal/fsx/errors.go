package fsx

import "errors"

var ErrLockTimeout = errors.New("lock timeout")
