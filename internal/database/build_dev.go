//go:build !prod

package database

import "gorm.io/gorm/logger"

// DefaultLogLevel echoes every statement in development builds.
func DefaultLogLevel() logger.LogLevel {
	return logger.Info
}

func IsDevelopment() bool {
	return true
}
