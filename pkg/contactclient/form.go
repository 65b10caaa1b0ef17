package contactclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/pkg/notify"
)

// User-facing notification texts.
const (
	SuccessNotice      = "Message sent successfully! I'll get back to you soon."
	FailureNotice      = "Failed to send message. Please try again."
	NetworkErrorNotice = "Network error. Please check your connection and try again."
)

// Sender delivers a message to the submission service.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

// Notifier presents a transient message to the user.
type Notifier interface {
	Show(message string, kind notify.Kind)
}

// Outcome describes how a Submit call ended.
type Outcome int

const (
	// OutcomeIgnored means a submission was already in flight.
	OutcomeIgnored Outcome = iota
	OutcomeSent
	OutcomeRejected
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "ignored"
	}
}

// ControlState is the visual state of the submit control.
type ControlState struct {
	Disabled     bool
	Spinner      bool
	LabelVisible bool
}

var idleControl = ControlState{LabelVisible: true}

var loadingControl = ControlState{Disabled: true, Spinner: true}

// Form is a single contact form instance.
type Form struct {
	sender   Sender
	notifier Notifier
	logger   zerolog.Logger

	mu      sync.Mutex
	fields  Message
	control ControlState
}

// NewForm wires a form to its transport and notification host.
func NewForm(sender Sender, notifier Notifier, logger zerolog.Logger) *Form {
	return &Form{
		sender:   sender,
		notifier: notifier,
		logger:   logger.With().Str("component", "contact_form").Logger(),
		control:  idleControl,
	}
}

// SetFields replaces the form input.
func (f *Form) SetFields(msg Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = msg
}

// Fields returns the current form input.
func (f *Form) Fields() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Control returns the submit control state.
func (f *Form) Control() ControlState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.control
}

// Submit sends the current fields once. While a submission is in flight
// further calls return OutcomeIgnored. The control is back to idle when
// Submit returns, whatever happened.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.control.Disabled {
		f.mu.Unlock()
		return OutcomeIgnored
	}
	f.control = loadingControl
	fields := f.fields
	f.mu.Unlock()

	defer f.restoreControl()

	result, err := f.sender.Send(ctx, fields)
	switch {
	case err != nil:
		f.logger.Warn().Err(err).Msg("contact submission could not reach service")
		f.notifier.Show(NetworkErrorNotice, notify.KindError)
		return OutcomeTransportError
	case !result.Success:
		f.logger.Warn().Str("reason", result.Message).Msg("contact submission rejected")
		f.notifier.Show(FailureNotice, notify.KindError)
		return OutcomeRejected
	default:
		f.notifier.Show(SuccessNotice, notify.KindSuccess)
		f.SetFields(Message{})
		return OutcomeSent
	}
}

func (f *Form) restoreControl() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.control = idleControl
}
