package db

import "errors"

var (
	ErrNotConfigured     = errors.New("db: connection URL is empty")
	ErrInvalidConfig     = errors.New("db: invalid connection config")
	ErrConnectionFailed  = errors.New("db: connection failed")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrate           = errors.New("db: migrate")
)
