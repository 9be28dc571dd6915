package service

import "errors"

var (
	ErrLoadNotFound     = errors.New("load not found")
	ErrInvalidLoad      = errors.New("invalid load")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden for this role")
	ErrUnknownRole      = errors.New("unknown role")
	ErrInvalidUser      = errors.New("invalid user")
	ErrInvalidTier      = errors.New("invalid subscription tier")
)
