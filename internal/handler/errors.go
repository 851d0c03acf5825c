// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHTTPAddress means the backend config names no address to serve the
// record API on.
var errNoHTTPAddress = errors.New("server http address is not configured")
