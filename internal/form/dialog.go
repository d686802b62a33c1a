// Package form holds the dialog controllers of the console: a draft edited
// locally, validated before anything is sent, and submitted either directly
// or after uploading an attached file.
package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// State is the lifecycle state of a dialog.
type State int

// Dialog states.
const (
	StateClosed State = iota
	StateEditing
	StateUploading
	StateSubmitting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateEditing:
		return "editing"
	case StateUploading:
		return "uploading"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Mode tells create dialogs from edit dialogs.
type Mode int

// Dialog modes.
const (
	ModeCreate Mode = iota
	ModeEdit
)

// Draft is the unsaved form state of an open dialog.
type Draft interface {
	Validate() error
}

// SubmitFunc sends a draft. It is the mutation behind the submit button.
type SubmitFunc[D Draft] func(ctx context.Context, draft D) error

// Dialog drives one dialog through closed, editing and submitting. Edits
// only touch the local draft; the only network activity happens in Submit
// and UploadThenSubmit.
type Dialog[D Draft] struct {
	mu sync.Mutex

	defaults          func() D
	requireAttachment bool
	state             State
	mode              Mode
	draft             D
	attachment        *Attachment
	lastErr           error
}

// DialogOption configures a Dialog.
type DialogOption func(*dialogOptions)

type dialogOptions struct {
	requireAttachment bool
}

// WithRequiredAttachment keeps create submits disabled until a file is
// attached.
func WithRequiredAttachment() DialogOption {
	return func(o *dialogOptions) {
		o.requireAttachment = true
	}
}

// NewDialog creates a closed dialog whose drafts start from defaults.
func NewDialog[D Draft](defaults func() D, opts ...DialogOption) *Dialog[D] {
	var options dialogOptions
	for _, opt := range opts {
		opt(&options)
	}

	return &Dialog[D]{
		defaults:          defaults,
		requireAttachment: options.requireAttachment,
		draft:             defaults(),
	}
}

// OpenCreate opens the dialog on a default draft.
func (d *Dialog[D]) OpenCreate() error {
	return d.open(ModeCreate, d.defaults())
}

// OpenEdit opens the dialog on a draft built from an existing record.
func (d *Dialog[D]) OpenEdit(draft D) error {
	return d.open(ModeEdit, draft)
}

func (d *Dialog[D]) open(mode Mode, draft D) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateClosed {
		return constants.ErrDialogOpen
	}

	d.state = StateEditing
	d.mode = mode
	d.draft = draft
	d.attachment = nil
	d.lastErr = nil

	return nil
}

// Edit changes the draft. It is refused outside the editing state.
func (d *Dialog[D]) Edit(fn func(*D)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateEditing {
		return fmt.Errorf("%w: %s", constants.ErrDialogNotOpen, d.state)
	}

	fn(&d.draft)

	return nil
}

// Attach selects a file; nil clears the selection.
func (d *Dialog[D]) Attach(a *Attachment) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateEditing {
		return fmt.Errorf("%w: %s", constants.ErrDialogNotOpen, d.state)
	}

	d.attachment = a

	return nil
}

// Attachment returns the selected file, if any.
func (d *Dialog[D]) Attachment() *Attachment {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.attachment
}

// Close discards the draft. A dialog that is submitting cannot be closed.
func (d *Dialog[D]) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateSubmitting || d.state == StateUploading {
		return constants.ErrDialogBusy
	}

	d.resetLocked()

	return nil
}

func (d *Dialog[D]) resetLocked() {
	d.state = StateClosed
	d.mode = ModeCreate
	d.draft = d.defaults()
	d.attachment = nil
}

// State returns the current state.
func (d *Dialog[D]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// Mode returns whether the dialog creates or edits.
func (d *Dialog[D]) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.mode
}

// Draft returns a copy of the draft.
func (d *Dialog[D]) Draft() D {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.draft
}

// Err returns the error of the last failed submit.
func (d *Dialog[D]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.lastErr
}

// CanSubmit reports whether the submit control is enabled.
func (d *Dialog[D]) CanSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.submitBlockerLocked() == nil
}

func (d *Dialog[D]) submitBlockerLocked() error {
	if d.state != StateEditing {
		return fmt.Errorf("%w: %s", constants.ErrCannotSubmit, d.state)
	}

	if d.requireAttachment && d.mode == ModeCreate && d.attachment == nil {
		return fmt.Errorf("%w: no file attached", constants.ErrCannotSubmit)
	}

	if err := d.draft.Validate(); err != nil {
		return fmt.Errorf("%w: %w", constants.ErrCannotSubmit, err)
	}

	return nil
}

// Submit sends the draft. On success the draft is reset and the dialog
// closes; on failure it stays in editing with the draft intact. Errors are
// expected to be notified by send.
func (d *Dialog[D]) Submit(ctx context.Context, send SubmitFunc[D]) error {
	d.mu.Lock()

	if err := d.submitBlockerLocked(); err != nil {
		d.mu.Unlock()

		return err
	}

	d.state = StateSubmitting
	draft := d.draft
	d.mu.Unlock()

	return d.finish(send(ctx, draft))
}

// UploadThenSubmit uploads the attached file first and applies its URL to
// the draft with apply, then sends the draft. An upload failure aborts
// before anything is sent and keeps the draft; the uploader already
// notified it. Without an attachment it behaves like Submit.
func (d *Dialog[D]) UploadThenSubmit(ctx context.Context, uploader mobcash.Uploader, apply func(*D, string), send SubmitFunc[D]) error {
	d.mu.Lock()

	if err := d.submitBlockerLocked(); err != nil {
		d.mu.Unlock()

		return err
	}

	att := d.attachment
	if att == nil || att.Uploaded() {
		if att != nil {
			apply(&d.draft, att.URL)
		}

		d.state = StateSubmitting
		draft := d.draft
		d.mu.Unlock()

		return d.finish(send(ctx, draft))
	}

	d.state = StateUploading
	d.mu.Unlock()

	url, err := uploader.Upload(ctx, att.Name, att.Reader())

	d.mu.Lock()
	if err != nil {
		d.state = StateEditing
		d.lastErr = err
		d.mu.Unlock()

		return err //nolint:wrapcheck // already carries mobcash.ErrUpload
	}

	att.URL = url
	apply(&d.draft, url)
	d.state = StateSubmitting
	draft := d.draft
	d.mu.Unlock()

	return d.finish(send(ctx, draft))
}

func (d *Dialog[D]) finish(err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.state = StateEditing
		d.lastErr = err

		return err
	}

	d.lastErr = nil
	d.resetLocked()

	return nil
}
