package commands_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/codelabbj/icash-admin/cmd/icash/commands"
	"github.com/codelabbj/icash-admin/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// loadEnv returns the default environment with vars applied.
func loadEnv(t *testing.T, vars map[string]string) config.Config {
	t.Helper()

	env, err := config.LoadFrom(vars)
	require.NoError(t, err)

	return env
}

func newRoot(env config.Config) *cobra.Command {
	return commands.NewRootCommand(commands.Options{
		Env:      env,
		Version:  "1.2.3",
		Commit:   "abc123",
		Date:     "2026-01-02",
		Terminal: func() bool { return false },
	})
}

// result is the captured output of one command run.
type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args against a private config file.
func execute(t *testing.T, env config.Config, configFile string, args ...string) result {
	t.Helper()

	root := newRoot(env)

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configFile}, args...))

	err := root.ExecuteContext(context.Background())

	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func tempConfig(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "config.yml")
}

// fakeBackend serves canned JSON per "METHOD /path" and records the calls.
type fakeBackend struct {
	*httptest.Server

	mu    sync.Mutex
	calls []string
}

func newFakeBackend(t *testing.T, routes map[string]string) *fakeBackend {
	t.Helper()

	b := &fakeBackend{}
	mux := http.NewServeMux()

	for pattern, body := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			b.record(r.Method + " " + r.URL.Path)

			if body == "" {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			w.Header().Set("Content-Type", "application/json")

			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusCreated)
			}

			_, _ = w.Write([]byte(body))
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r.Method + " " + r.URL.Path)
		http.Error(w, `{"detail":"Pas trouvé."}`, http.StatusNotFound)
	})

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)

	return b
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, call)
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.calls...)
}
