package common

import (
	"context"
	"net/http"
	"time"

	v0common "SchedulingAPI/internal/v0/common"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose reachability should show up in /status.
type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency"`
	StoreLatency          string `json:"store_latency"`
	Store                 string `json:"store"`
	Uptime                string `json:"uptime"`
}

// Uptime Logic
var startTime = time.Now()

func uptime() time.Duration {
	return time.Since(startTime)
}

// Ping Logic
func ping(ctx context.Context, p Pinger) (time.Duration, error) {
	start := time.Now()
	if p == nil {
		return time.Since(start), nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := p.Ping(ctx)
	return time.Since(start), err
}

func Status(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		storeLatency, err := ping(c.Request.Context(), store)

		data := StatusResponse{
			StoreLatency: storeLatency.String(),
			Store:        "ok",
			Uptime:       uptime().Truncate(time.Second).String(),
		}
		code := http.StatusOK
		if err != nil {
			data.Store = err.Error()
			code = http.StatusServiceUnavailable
		}
		data.InternalServerLatency = time.Since(start).String()
		v0common.Success(c, code, data)
	}
}

func RegisterRoutes(rg *gin.RouterGroup, store Pinger) {
	rg.GET("/status", Status(store))
}

//This project is the facility scheduling backend API for the OpenSourceDUTH team.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
