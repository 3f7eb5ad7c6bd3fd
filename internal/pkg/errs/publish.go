package errs

import (
	"errors"
	"fmt"
)

var ErrPublish = errors.New("publish failed")

// PublishError reports a notification that could not be handed to the transport.
type PublishError struct {
	Topic string
	Key   string
	Cause error
}

func NewPublishError(topic, key string) *PublishError {
	return &PublishError{Topic: topic, Key: key}
}

func NewPublishErrorWithCause(topic, key string, cause error) *PublishError {
	return &PublishError{Topic: topic, Key: key, Cause: cause}
}

func (e *PublishError) Error() string {
	return withCause(fmt.Sprintf("%s: topic is: %s, key is: %s", ErrPublish, e.Topic, e.Key), e.Cause)
}

func (e *PublishError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPublish}
	}
	return []error{ErrPublish, e.Cause}
}
