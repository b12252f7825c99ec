// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ledger owns the live election and makes every operation one
// all-or-nothing step: lock, apply to a clone, persist, publish.
package ledger
