package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	uploads  []map[string]string
	asks     []map[string]string
	studios  []map[string]string
	askReply string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	backend := &fakeBackend{
		askReply: `{"answer":"Inertia resists change in motion.","citation":"Ch2.pdf p4"}`,
	}

	server := httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(server.Close)
	t.Setenv("NB_API_BASE_URL", server.URL)

	return backend
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.URL.Path {
	case "/login":
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["password"] != payload["username"]+"123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"status":"error","message":"bad password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"status":"success","user":"`+payload["username"]+`"}`)
	case "/upload":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.uploads = append(b.uploads, map[string]string{
			"file":    header.Filename,
			"subject": r.FormValue("subject"),
			"user":    r.FormValue("user"),
		})
		_, _ = io.WriteString(w, `{"status":"success"}`)
	case "/ask":
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		b.asks = append(b.asks, payload)
		_, _ = io.WriteString(w, b.askReply)
	case "/generate-studio":
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		b.studios = append(b.studios, payload)
		_, _ = io.WriteString(w, `{"answer":"Summary of `+payload["subject"]+` notes"}`)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) snapshot() (uploads, asks, studios []map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append(uploads, b.uploads...), append(asks, b.asks...), append(studios, b.studios...)
}

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestSubjectsListsEverySubject(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "subjects")
	require.NoError(t, err)
	assert.Contains(t, stdout, "physics\tPhysics\t(default)")
	assert.Contains(t, stdout, "chemistry\tChemistry")
	assert.Contains(t, stdout, "biology\tBiology")
}

func TestLoginWithFlagsPersistsIdentity(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	stdout, stderr, err := executeCLI(t, home, "login", "--username", "roshni", "--password", "roshni123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as roshni")
	assert.Contains(t, stderr, "Signing in...")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "roshni\n", stdout)

	data, err := os.ReadFile(filepath.Join(home, ".notebook", "state.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "roshni")
}

func TestLoginPromptsForMissingPassword(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	stdout, stderr, err := executeCLIWithInput(t, home, "sujal123\n", "login", "--username", "sujal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as sujal")
	assert.Contains(t, stderr, "Password")
	assert.NotContains(t, stderr, "Username")
}

func TestLoginRejectedShowsBackendMessage(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "-u", "roshni", "-p", "nope")
	require.Error(t, err)
	assert.Equal(t, "bad password", err.Error())

	_, _, err = executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLoginWithBackendDownShowsServiceOffline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	t.Setenv("NB_API_BASE_URL", server.URL)

	_, _, err := executeCLI(t, t.TempDir(), "login", "-u", "roshni", "-p", "roshni123")
	require.Error(t, err)
	assert.Equal(t, "Service offline. Is the notebook backend running?", err.Error())
}

func TestUploadToSubjectAndListAttachments(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	notes := writeNotes(t, "notes.pdf", "%PDF-1.4 acids and bases")

	stdout, stderr, err := executeCLI(t, home, "upload", notes, "--subject", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Uploaded notes.pdf to Chemistry (att_")
	assert.Contains(t, stderr, "Uploading...")

	uploads, _, _ := backend.snapshot()
	require.Len(t, uploads, 1)
	assert.Equal(t, map[string]string{"file": "notes.pdf", "subject": "chemistry", "user": "roshni"}, uploads[0])

	stdout, _, err = executeCLI(t, home, "attachments", "--subject", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 added")
	assert.Contains(t, stdout, "notes.pdf")

	stdout, _, err = executeCLI(t, home, "attachments")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 added")
	assert.NotContains(t, stdout, "notes.pdf")

	stdout, _, err = executeCLI(t, home, "attachments", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\tchemistry\tnotes.pdf\t")
}

func TestUploadWarnsOnUnlistedExtension(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	slides := writeNotes(t, "slides.pptx", "binary-ish")

	_, stderr, err := executeCLI(t, home, "upload", slides)
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: slides.pptx is not one of .pdf, .txt, .docx")
}

func TestAttachmentsRemove(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	stdout, _, err := executeCLI(t, home, "upload", writeNotes(t, "forces.txt", "F = ma"))
	require.NoError(t, err)

	id := strings.TrimSuffix(stdout[strings.Index(stdout, "(")+1:], ")\n")
	require.True(t, strings.HasPrefix(id, "att_"), id)

	stdout, _, err = executeCLI(t, home, "attachments", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed "+id)

	stdout, _, err = executeCLI(t, home, "attachments", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No attachments.")

	_, _, err = executeCLI(t, home, "attachments", "rm", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment not found")
}

func TestAskRendersAnswerWithCitation(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	stdout, stderr, err := executeCLI(t, home, "ask", "What", "is", "inertia?")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Thinking...")
	assert.Contains(t, stdout, "What is inertia?")
	assert.Contains(t, stdout, "Inertia resists change in motion.")
	assert.Contains(t, stdout, "Ref: Ch2.pdf p4")
	assert.Contains(t, stdout, "Confidence: High")

	_, asks, _ := backend.snapshot()
	require.Len(t, asks, 1)
	assert.Equal(t, map[string]string{"user": "roshni", "subject": "physics", "question": "What is inertia?"}, asks[0])
}

func TestAskMalformedResponseRendersInline(t *testing.T) {
	backend := newFakeBackend(t)
	backend.askReply = `<html>502 Bad Gateway</html>`
	home := t.TempDir()
	login(t, home)

	stdout, _, err := executeCLI(t, home, "ask", "--subject", "biology", "What is a cell?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Connection to backend failed.")
	assert.NotContains(t, stdout, "Ref:")
}

func TestAskRequiresLogin(t *testing.T) {
	newFakeBackend(t)

	_, _, err := executeCLI(t, t.TempDir(), "ask", "What is inertia?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestAskRejectsUnknownSubject(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	_, _, err := executeCLI(t, home, "ask", "--subject", "history", "Who won?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subject")
}

func TestStudioSendsTaskForSubject(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	stdout, stderr, err := executeCLI(t, home, "studio", "summary", "--subject", "biology")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generating Summary...")
	assert.Contains(t, stdout, "Summary of biology notes")

	_, _, studios := backend.snapshot()
	require.Len(t, studios, 1)
	assert.Equal(t, map[string]string{"user": "roshni", "subject": "biology", "task": "summary"}, studios[0])

	_, _, err = executeCLI(t, home, "studio", "essay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown studio artifact")
}

func TestLogoutForgetsIdentityAndAttachments(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	_, _, err := executeCLI(t, home, "upload", writeNotes(t, "notes.pdf", "%PDF-1.4"))
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")

	_, _, err = executeCLI(t, home, "whoami")
	require.Error(t, err)

	stdout, _, err = executeCLI(t, home, "attachments", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No attachments.")
}

func TestChatSession(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	script := strings.Join([]string{
		"What is inertia?",
		"/subject chemistry",
		"/studio summary",
		"/studio essay",
		"/quit",
		"never asked",
	}, "\n") + "\n"

	stdout, _, err := executeCLIWithInput(t, home, script, "chat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Type /help for commands.")
	assert.Contains(t, stdout, "Inertia resists change in motion.")
	assert.Contains(t, stdout, "[Chemistry]")
	assert.Contains(t, stdout, "Summary of chemistry notes")
	assert.Contains(t, stdout, "unknown studio artifact")

	_, asks, studios := backend.snapshot()
	assert.Len(t, asks, 1)
	require.Len(t, studios, 1)
	assert.Equal(t, "chemistry", studios[0]["subject"])
}

func TestChatUploadToOtherSubject(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	login(t, home)

	notes := writeNotes(t, "cells.txt", "cells divide")
	script := "/upload " + notes + " biology\n/attachments\n/help\n"

	stdout, _, err := executeCLIWithInput(t, home, script, "chat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cells.txt added to Biology notes.")
	assert.Contains(t, stdout, "0 added")
	assert.Contains(t, stdout, "/subject NAME")

	uploads, _, _ := backend.snapshot()
	require.Len(t, uploads, 1)
	assert.Equal(t, "biology", uploads[0]["subject"])
}

func TestChatRequiresLogin(t *testing.T) {
	newFakeBackend(t)

	_, _, err := executeCLIWithInput(t, t.TempDir(), "/quit\n", "chat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run nb login first")
}

func TestStoreDriverMemoryDoesNotPersist(t *testing.T) {
	newFakeBackend(t)
	t.Setenv("NB_STORE_DRIVER", "memory")
	home := t.TempDir()

	login(t, home)

	_, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(home, ".notebook", "state.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInvalidStateFileBlocksCommandsUntilLogout(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	stateDir := filepath.Join(home, ".notebook")
	require.NoError(t, os.MkdirAll(stateDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "state.toml"), []byte(strings.Join([]string{
		"version = 1",
		"",
		"[session]",
		`identity = "roshni"`,
		"",
		"[[attachments]]",
		`id = "att_1"`,
		`name = "algebra.pdf"`,
		`subject = "math"`,
		"",
	}, "\n")), 0o600))

	_, _, err := executeCLI(t, home, "attachments", "--all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stored state")
	assert.Contains(t, err.Error(), "run nb logout to reset")

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")

	stdout, _, err = executeCLI(t, home, "attachments", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No attachments.")
}

func TestFailingCommandStillClosesRedisStore(t *testing.T) {
	newFakeBackend(t)
	server := miniredis.RunT(t)
	t.Setenv("NB_STORE_DRIVER", "redis")
	t.Setenv("NB_STORE_REDIS_ADDR", server.Addr())
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "attachments", "rm", "att_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment not found")

	assert.Positive(t, server.TotalConnectionCount())
	assert.Eventually(t, func() bool {
		return server.CurrentConnectionCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestExecuteRunsClosersWhenCommandFails(t *testing.T) {
	newFakeBackend(t)
	t.Setenv("HOME", t.TempDir())

	root, app := newRootCmd()
	closed := false
	app.closers = append(app.closers, func() error {
		closed = true
		return nil
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"whoami"})

	err := execute(root, app)
	require.Error(t, err)
	assert.True(t, closed)
	assert.Empty(t, app.closers)
}

func login(t *testing.T, home string) {
	t.Helper()

	_, _, err := executeCLI(t, home, "login", "--username", "roshni", "--password", "roshni123")
	require.NoError(t, err)
}

func writeNotes(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root, app := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := execute(root, app)
	return stdout.String(), stderr.String(), err
}
