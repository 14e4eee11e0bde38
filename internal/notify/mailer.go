// Package notify provides the outbound message capability consumed by the
// HTTP layer on contact-form submission. Delivery is fire-and-forget: there
// is no confirmation contract and failures are the caller's concern.
package notify

import "context"

type Mailer interface {
	SendMessage(ctx context.Context, recipient, subject, body string) error
}
