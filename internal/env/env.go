package env

import (
	"os"
	"strconv"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Server
const (
	EnvHTTPAddr        = "HTTP_ADDR"
	EnvGinMode         = "GIN_MODE"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// Scheduling
const (
	EnvScheduleDBPath         = "SCHEDULE_DB_PATH"
	EnvConflictIgnoreHalfHour = "CONFLICT_IGNORE_HALF_HOUR"
)

// Grid export job
const (
	EnvExportDir            = "EXPORT_DIR"
	EnvExportCron           = "EXPORT_CRON"
	EnvExportTimeoutMinutes = "EXPORT_TIMEOUT_MINUTES"
)

// Defaults
const (
	DefaultHTTPAddr             = ":9237"
	DefaultScheduleDBPath       = "./internal/databases/schedule.db"
	DefaultLogLevel             = "info"
	DefaultExportCron           = "0 2 * * *"
	DefaultExportTimeoutMinutes = 4
	DefaultShutdownTimeout      = 10 * time.Second
)

/*
This project is the facility scheduling backend API for the OpenSourceDUTH team.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
