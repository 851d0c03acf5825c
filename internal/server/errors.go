// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServer is returned by NewServer when there are no HTTP handlers or
// no address to bind them to.
var errNoHTTPServer = errors.New("no http server to run")
