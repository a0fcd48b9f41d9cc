package eventbus

import "errors"

var (
	// ErrConnect is returned when Redis cannot be reached
	ErrConnect = errors.New("eventbus: failed to connect to redis")

	// ErrPublish is returned when a payload cannot be enqueued
	ErrPublish = errors.New("eventbus: failed to publish")

	// ErrConsume is returned when the queue cannot be read
	ErrConsume = errors.New("eventbus: failed to consume")
)
