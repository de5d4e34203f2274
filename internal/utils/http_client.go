// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-track-keeper"

// HTTPClient is a wrapper around the resty.Client HTTP client. It embeds
// *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client bound to baseURL. A zero
// timeout leaves resty's default (no timeout) in place.
//
//	client := utils.NewHTTPClient("https://api.example.com", 30*time.Second)
//	resp, err := client.R().Get("/user")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
