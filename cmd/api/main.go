package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"SchedulingAPI/internal/common"
	"SchedulingAPI/internal/databases"
	"SchedulingAPI/internal/env"
	"SchedulingAPI/internal/export"
	"SchedulingAPI/internal/logger"
	"SchedulingAPI/internal/timegrid"
	v0common "SchedulingAPI/internal/v0/common"
	"SchedulingAPI/internal/v0/schedule"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ginMode := env.GetEnv(env.EnvGinMode, gin.ReleaseMode)
	gin.SetMode(ginMode)

	zlog, err := logger.New(env.GetEnv(env.EnvLogLevel, env.DefaultLogLevel), ginMode == gin.DebugMode)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schedule database
	dbPath := env.GetEnv(env.EnvScheduleDBPath, env.DefaultScheduleDBPath)
	scheduleDB, err := databases.Open(dbPath)
	if err != nil {
		zlog.Fatal("open schedule database", zap.String("path", dbPath), zap.Error(err))
	}
	defer scheduleDB.Close()

	if err := databases.MigrateSchedule(scheduleDB); err != nil {
		zlog.Fatal("migrate schedule database", zap.Error(err))
	}

	if err := schedule.RegisterValidators(); err != nil {
		zlog.Fatal("register validators", zap.Error(err))
	}

	checker := timegrid.Checker{IncludeHalfHour: !env.GetBool(env.EnvConflictIgnoreHalfHour, false)}

	// Initialize schedule components
	schedRepo := schedule.NewRepository(scheduleDB)
	schedService := schedule.NewService(schedRepo, checker, zlog.Named("schedule"))
	schedHandler := schedule.NewHandler(schedService, zlog.Named("http"))

	exporter := export.New(
		schedService,
		env.GetEnv(env.EnvExportDir, ""),
		env.GetEnv(env.EnvExportCron, env.DefaultExportCron),
		zlog,
	)
	if mins := env.GetInt(env.EnvExportTimeoutMinutes, env.DefaultExportTimeoutMinutes); mins > 0 {
		exporter.Timeout = time.Duration(mins) * time.Minute
	}
	if err := exporter.Start(); err != nil {
		zlog.Fatal("start grid export", zap.Error(err))
	}
	defer exporter.Stop()

	router := gin.New()
	router.Use(v0common.RequestID(), common.AccessLog(zlog.Named("access")), common.Recovery(zlog))

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, schedService)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		schedule.RegisterRoutes(v0Group, schedHandler)
	}

	srv := &http.Server{
		Addr:    env.GetEnv(env.EnvHTTPAddr, env.DefaultHTTPAddr),
		Handler: router,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	// Graceful shutdown handling
	<-ctx.Done()
	zlog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.GetDuration(env.EnvShutdownTimeout, env.DefaultShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}

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
