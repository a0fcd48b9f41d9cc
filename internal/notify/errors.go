package notify

import "errors"

var (
	// ErrUnknownKind is returned for a kind or status no template exists for
	ErrUnknownKind = errors.New("notify: unknown notification kind")

	// ErrResolveContact is returned when the recipient account cannot be looked up
	ErrResolveContact = errors.New("notify: failed to resolve recipient")

	// ErrNoRecipientEmail is returned when the recipient has no e-mail address
	ErrNoRecipientEmail = errors.New("notify: recipient has no email")

	// ErrOptedOut is returned when the recipient disabled booking e-mails
	ErrOptedOut = errors.New("notify: recipient opted out")

	// ErrRender is returned when a template fails
	ErrRender = errors.New("notify: failed to render email")

	// ErrSend is returned when the e-mail provider rejects or cannot take the message
	ErrSend = errors.New("notify: failed to send email")

	// ErrEncode is returned when a notification cannot be (de)serialized for the queue
	ErrEncode = errors.New("notify: failed to encode notification")
)

// isSkip reports outcomes that are expected and not failures
func isSkip(err error) bool {
	return errors.Is(err, ErrOptedOut) || errors.Is(err, ErrNoRecipientEmail)
}
