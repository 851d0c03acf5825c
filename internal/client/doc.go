// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the status screen in the foreground and the connectivity monitor,
// sync trigger and scheduled sync job in the background, and releases the
// local store when the process exits.
package client
