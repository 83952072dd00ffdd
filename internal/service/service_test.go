package service

import (
	"bitwise74/notes-api/config"
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationLink(t *testing.T) {
	link := VerificationLink("http://localhost:5173/", "abc123", "dana+notes@example.com")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/verification", u.Path)
	assert.Equal(t, "abc123", u.Query().Get("token"))
	assert.Equal(t, "dana+notes@example.com", u.Query().Get("email"))
}

func TestNewMailer(t *testing.T) {
	assert.IsType(t, LogMailer{}, NewMailer(&config.MailConfig{}))

	m := NewMailer(&config.MailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, Sender: "noreply@example.com"})
	require.IsType(t, &SMTPMailer{}, m)

	err := m.SendVerification(context.Background(), "NoReply@example.com", "dana", "http://x")
	require.Error(t, err, "refuses to mail itself")

	assert.NoError(t, LogMailer{}.SendVerification(context.Background(), "dana@example.com", "dana", "http://x"))
}

type fakeDeleter struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (f *fakeDeleter) DeleteUnverifiedBefore(_ context.Context, t time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cutoffs = append(f.cutoffs, t)
	return 1, nil
}

func (f *fakeDeleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.cutoffs)
}

func TestAccountCleanup(t *testing.T) {
	d := &fakeDeleter{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		AccountCleanup(ctx, 10*time.Millisecond, 48*time.Hour, d)
		close(done)
	}()

	require.Eventually(t, func() bool { return d.calls() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	d.mu.Lock()
	defer d.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), d.cutoffs[0], time.Minute)
}
