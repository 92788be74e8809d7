// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package models holds the display records OyoNews renders and the pure
// functions that build them from raw CMS payloads.
//
// Normalization never touches the network or shared state, so normalizing
// the same payload twice yields equal records.
package models
