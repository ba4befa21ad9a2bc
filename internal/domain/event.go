package domain

import (
	"errors"
	"time"
)

// ErrInvalidEvent — сообщение шины не разбирается; повторять его бессмысленно.
var ErrInvalidEvent = errors.New("invalid invalidation event")

// InvalidationEvent — сообщение шины: после успешной мутации кэши других инстансов устарели.
type InvalidationEvent struct {
	Action   Action    `json:"action"`
	Instance string    `json:"instance"`
	At       time.Time `json:"at"`
}
