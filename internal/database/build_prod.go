//go:build prod

package database

import "gorm.io/gorm/logger"

// DefaultLogLevel only reports slow queries and failures in production builds.
func DefaultLogLevel() logger.LogLevel {
	return logger.Warn
}

func IsDevelopment() bool {
	return false
}
