package ports

import "context"

// EventPublisher hands a notification to the messaging transport.
//
// The implementation owns retry and timeout policy and marshals payload itself.
// Every failure is reported as *errs.PublishError.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}
