// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package websocket

import "github.com/goccy/go-json"

// Message types exchanged with the browser.
const (
	MessageTypeSentinelVisible = "sentinel_visible"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
	MessageTypeSnapshot        = "snapshot"
	MessageTypeBusy            = "busy"
	MessageTypeError           = "error"
)

// Message is one frame in either direction.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage encodes data into a frame.
func NewMessage(msgType string, data interface{}) (Message, error) {
	if data == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: raw}, nil
}
