// Package storage defines shared storage semantics for the storefront's
// durable local slots (session credentials, cart, preferences).
//
// Store interfaces live with their consumers (cart.Store, session.Store,
// app.PreferenceStore); implementations under this tree satisfy all of
// them. A missing record is reported as ErrNotFound and callers treat it as
// absence, never as a fault.
package storage

import "errors"

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")
