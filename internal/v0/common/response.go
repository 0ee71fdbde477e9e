package common

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	Version = "v0"

	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// Structs for the API response format

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

type APIResponse struct {
	Data     any      `json:"data"`
	Errors   []string `json:"errors"`
	Metadata Metadata `json:"metadata"`
}

// RequestID tags each request with an id, reusing the caller's header if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or "" outside that middleware.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func CreateAPIResponse(data any, errors []string, requestID string) APIResponse {
	// If the requestID is blank and not cascading from the middleware generate a new one
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if errors == nil {
		errors = []string{}
	}
	return APIResponse{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			Version:   Version,
			RequestID: requestID,
		},
	}
}

// Response helpers

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, CreateAPIResponse(data, nil, RequestIDFrom(c)))
}

func Fail(c *gin.Context, status int, errors ...string) {
	c.JSON(status, CreateAPIResponse(nil, errors, RequestIDFrom(c)))
}

// FailWithData is used when the error carries a payload, such as the meeting
// behind a conflict.
func FailWithData(c *gin.Context, status int, data any, errors ...string) {
	c.JSON(status, CreateAPIResponse(data, errors, RequestIDFrom(c)))
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
