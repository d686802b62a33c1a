package form_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnection = &mobcash.TransportError{Method: "POST", URL: "https://api.zefast.net/mobcash/ads", Err: errors.New("connection refused")}

// fakeUploader answers uploads with a fixed URL or error.
type fakeUploader struct {
	url   string
	err   error
	calls int
	names []string
}

func (u *fakeUploader) Upload(_ context.Context, filename string, body io.Reader) (string, error) {
	u.calls++
	u.names = append(u.names, filename)

	_, _ = io.ReadAll(body)

	if u.err != nil {
		return "", fmt.Errorf("%w: %s: %w", mobcash.ErrUpload, filename, u.err)
	}

	return u.url, nil
}

// recordingSend records the drafts it is asked to send.
type recordingSend[D form.Draft] struct {
	err   error
	sent  []D
	state func() form.State
	seen  []form.State
}

func (r *recordingSend[D]) send(_ context.Context, draft D) error {
	r.sent = append(r.sent, draft)

	if r.state != nil {
		r.seen = append(r.seen, r.state())
	}

	return r.err
}

func pngAttachment(t *testing.T) *form.Attachment {
	t.Helper()

	att, err := form.NewAttachment("ad.png", []byte("\x89PNG\r\n\x1a\n0000"))
	require.NoError(t, err)

	return att
}

func TestDialog_Lifecycle(t *testing.T) {
	t.Parallel()

	d := form.NewDialog(func() form.NotificationDraft { return form.NotificationDraft{} })
	assert.Equal(t, form.StateClosed, d.State())

	require.ErrorIs(t, d.Edit(func(n *form.NotificationDraft) { n.Title = "x" }), constants.ErrDialogNotOpen)

	require.NoError(t, d.OpenCreate())
	assert.Equal(t, form.StateEditing, d.State())
	assert.Equal(t, form.ModeCreate, d.Mode())
	require.ErrorIs(t, d.OpenCreate(), constants.ErrDialogOpen)

	require.NoError(t, d.Edit(func(n *form.NotificationDraft) { n.Title = "Promo" }))
	assert.Equal(t, "Promo", d.Draft().Title)
	assert.False(t, d.CanSubmit())

	require.NoError(t, d.Close())
	assert.Equal(t, form.StateClosed, d.State())
	assert.Empty(t, d.Draft().Title)
}

func TestDialog_SubmitSuccessResets(t *testing.T) {
	t.Parallel()

	send := &recordingSend[form.NotificationDraft]{}
	d := form.NewDialog(func() form.NotificationDraft { return form.NotificationDraft{} })
	send.state = d.State

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Edit(func(n *form.NotificationDraft) {
		n.Title = "Promo"
		n.Content = "Bonus x2"
	}))
	require.True(t, d.CanSubmit())

	require.NoError(t, d.Submit(context.Background(), send.send))

	require.Len(t, send.sent, 1)
	assert.Equal(t, "Promo", send.sent[0].Title)
	assert.Equal(t, []form.State{form.StateSubmitting}, send.seen)
	assert.Equal(t, form.StateClosed, d.State())
	assert.Equal(t, form.NotificationDraft{}, d.Draft())
}

// A failed mutation keeps the dialog open on the unchanged draft.
func TestDialog_SubmitFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	send := &recordingSend[form.DepositDraft]{err: errConnection}
	d := form.NewDialog(func() form.DepositDraft { return form.DepositDraft{} })

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Edit(func(dep *form.DepositDraft) {
		dep.Amount = "100000"
		dep.BetApp = "1xbet"
	}))

	err := d.Submit(context.Background(), send.send)
	require.Error(t, err)
	assert.True(t, mobcash.IsTransport(err))

	assert.Equal(t, form.StateEditing, d.State())
	assert.Equal(t, form.DepositDraft{Amount: "100000", BetApp: "1xbet"}, d.Draft())
	assert.Equal(t, err, d.Err())
	assert.True(t, d.CanSubmit())
}

func TestDialog_InvalidDraftIsNeverSent(t *testing.T) {
	t.Parallel()

	send := &recordingSend[form.TransactionDraft]{}
	d := form.NewDialog(form.NewDepositTransactionDraft)

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Edit(func(tx *form.TransactionDraft) {
		tx.Amount = "beaucoup"
		tx.PhoneNumber = "97000000"
	}))

	assert.False(t, d.CanSubmit())

	err := d.Submit(context.Background(), send.send)
	require.ErrorIs(t, err, constants.ErrCannotSubmit)
	require.ErrorIs(t, err, mobcash.ErrValidation)
	assert.Empty(t, send.sent)
	assert.Equal(t, form.StateEditing, d.State())
}

// An advertisement without a file cannot be submitted and nothing is sent.
func TestDialog_RequiredAttachment(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.zefast.net/ad.png"}
	send := &recordingSend[form.AdvertisementDraft]{}
	d := form.NewDialog(form.NewAdvertisementDraft, form.WithRequiredAttachment())

	require.NoError(t, d.OpenCreate())
	assert.False(t, d.CanSubmit())

	err := d.UploadThenSubmit(context.Background(), uploader, form.SetAdvertisementImage, send.send)
	require.ErrorIs(t, err, constants.ErrCannotSubmit)
	assert.Zero(t, uploader.calls)
	assert.Empty(t, send.sent)

	require.NoError(t, d.Attach(pngAttachment(t)))
	assert.True(t, d.CanSubmit())
}

func TestDialog_UploadThenSubmit(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.zefast.net/ad.png"}
	send := &recordingSend[form.AdvertisementDraft]{}
	d := form.NewDialog(form.NewAdvertisementDraft, form.WithRequiredAttachment())
	send.state = d.State

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Attach(pngAttachment(t)))

	require.NoError(t, d.UploadThenSubmit(context.Background(), uploader, form.SetAdvertisementImage, send.send))

	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, []string{"ad.png"}, uploader.names)
	require.Len(t, send.sent, 1)
	assert.Equal(t, "https://cdn.zefast.net/ad.png", send.sent[0].Image)
	assert.True(t, send.sent[0].Enable)
	assert.Equal(t, []form.State{form.StateSubmitting}, send.seen)
	assert.Equal(t, form.StateClosed, d.State())
	assert.Nil(t, d.Attachment())
}

func TestDialog_UploadFailureAbortsSubmit(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{err: errConnection}
	send := &recordingSend[form.RechargeDraft]{}
	d := form.NewDialog(form.NewRechargeDraft)

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Edit(func(r *form.RechargeDraft) {
		r.Amount = "50000"
		r.PaymentReference = "TX-1"
	}))

	att, err := form.NewAttachment("proof.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, d.Attach(att))

	err = d.UploadThenSubmit(context.Background(), uploader, form.SetPaymentProof, send.send)
	require.ErrorIs(t, err, mobcash.ErrUpload)

	assert.Empty(t, send.sent)
	assert.Equal(t, form.StateEditing, d.State())
	assert.Equal(t, "50000", d.Draft().Amount)
	assert.Empty(t, d.Draft().PaymentProof)
	assert.Same(t, att, d.Attachment())

	uploader.err = nil
	uploader.url = "https://cdn.zefast.net/proof.pdf"

	require.NoError(t, d.UploadThenSubmit(context.Background(), uploader, form.SetPaymentProof, send.send))
	require.Len(t, send.sent, 1)
	assert.Equal(t, "https://cdn.zefast.net/proof.pdf", send.sent[0].PaymentProof)
	assert.Equal(t, 2, uploader.calls)
}

func TestDialog_RetryAfterSubmitFailureReusesUpload(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.zefast.net/net.png"}
	send := &recordingSend[form.NetworkDraft]{err: errConnection}
	d := form.NewDialog(form.NewNetworkDraft)

	require.NoError(t, d.OpenCreate())
	require.NoError(t, d.Edit(func(n *form.NetworkDraft) {
		n.Name = "mtn"
		n.PublicName = "MTN"
		n.CountryCode = "bj"
	}))
	require.NoError(t, d.Attach(pngAttachment(t)))

	require.Error(t, d.UploadThenSubmit(context.Background(), uploader, form.SetNetworkImage, send.send))
	assert.Equal(t, "https://cdn.zefast.net/net.png", d.Draft().Image)

	send.err = nil

	require.NoError(t, d.UploadThenSubmit(context.Background(), uploader, form.SetNetworkImage, send.send))
	assert.Equal(t, 1, uploader.calls)
	assert.Len(t, send.sent, 2)
}

func TestDialog_OpenEdit(t *testing.T) {
	t.Parallel()

	orig := mobcash.Network{ID: 1, Name: "mtn", PublicName: "MTN", CountryCode: "bj", Enable: true}
	d := form.NewDialog(form.NewNetworkDraft)

	require.NoError(t, d.OpenEdit(form.NetworkDraftFrom(orig)))
	assert.Equal(t, form.ModeEdit, d.Mode())
	assert.True(t, d.CanSubmit())

	require.NoError(t, d.Close())
	assert.Equal(t, form.NewNetworkDraft(), d.Draft())
}

func TestAttachment(t *testing.T) {
	t.Parallel()

	att := pngAttachment(t)
	assert.Equal(t, "image/png", att.ContentType())
	assert.Contains(t, att.Preview, "data:image/png;base64,")
	assert.False(t, att.Uploaded())

	_, err := form.NewAttachment("empty.png", nil)
	require.ErrorIs(t, err, constants.ErrAttachmentEmpty)

	_, err = form.OpenAttachment(t.TempDir())
	require.ErrorIs(t, err, constants.ErrNotRegularFile)
}
