package notify_test

import (
	"bytes"
	"testing"

	"github.com/codelabbj/icash-admin/internal/notify"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
)

var (
	_ mobcash.Notifier = (*notify.Toaster)(nil)
	_ mobcash.Notifier = (*notify.Recorder)(nil)
	_ mobcash.Notifier = notify.Discard{}
)

func TestToaster(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	toaster := notify.NewToaster(&buf)
	toaster.Success("Réseau créé avec succès!")
	toaster.Error("Erreur de connexion au serveur")

	out := buf.String()
	assert.Contains(t, out, "✓ Réseau créé avec succès!")
	assert.Contains(t, out, "✗ Erreur de connexion au serveur")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := &notify.Recorder{}
	rec.Success("ok")
	rec.Error("ko")
	rec.Error("ko again")

	assert.Equal(t, 1, rec.Count(notify.LevelSuccess))
	assert.Equal(t, 2, rec.Count(notify.LevelError))
	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "ok"}, rec.Messages()[0])
}
