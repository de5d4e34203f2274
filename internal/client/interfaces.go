// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// PasswordFunc obtains the master password, showing prompt when it has to
// ask interactively.
type PasswordFunc func(prompt string) (string, error)
