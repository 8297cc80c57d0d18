package digest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/erzhanov/jobtrack/internal/digest"
	"github.com/erzhanov/jobtrack/internal/domain"
	"log/slog"
)

type fakeLister struct {
	entries []*domain.DigestEntry
	err     error
}

func (f *fakeLister) OpenApplications(_ context.Context) ([]*domain.DigestEntry, error) {
	return f.entries, f.err
}

type recordingSender struct {
	sent    []string // recipient addresses in order
	bodies  []string
	failFor string // recipient that errors
}

func (s *recordingSender) Send(_ context.Context, to, _, body string) error {
	if to == s.failFor {
		return errors.New("delivery failed")
	}
	s.sent = append(s.sent, to)
	s.bodies = append(s.bodies, body)
	return nil
}

func newDigest(lister *fakeLister, sender *recordingSender) *digest.Digest {
	return digest.New(lister, sender, slog.Default(), "0 9 * * 1")
}

func TestRun_OneEmailPerUser(t *testing.T) {
	lister := &fakeLister{entries: []*domain.DigestEntry{
		{UserID: "u1", Username: "Alice", Email: "a@x.com", Pending: 2, Interview: 1},
		{UserID: "u2", Username: "Bob", Email: "b@x.com", Pending: 1},
	}}
	sender := &recordingSender{}

	if err := newDigest(lister, sender).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	if sender.sent[0] != "a@x.com" || sender.sent[1] != "b@x.com" {
		t.Errorf("recipients = %v", sender.sent)
	}
	if !strings.Contains(sender.bodies[0], "Alice") || !strings.Contains(sender.bodies[0], "2 application") {
		t.Errorf("body = %q", sender.bodies[0])
	}
}

func TestRun_OneFailureDoesNotAbortCycle(t *testing.T) {
	lister := &fakeLister{entries: []*domain.DigestEntry{
		{UserID: "u1", Username: "Alice", Email: "a@x.com", Pending: 1},
		{UserID: "u2", Username: "Bob", Email: "b@x.com", Pending: 1},
	}}
	sender := &recordingSender{failFor: "a@x.com"}

	if err := newDigest(lister, sender).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0] != "b@x.com" {
		t.Errorf("recipients = %v, want just b@x.com", sender.sent)
	}
}

func TestRun_ListerErrorPropagates(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	sender := &recordingSender{}

	if err := newDigest(lister, sender).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(sender.sent))
	}
}

func TestStart_RejectsBadCronSpec(t *testing.T) {
	d := digest.New(&fakeLister{}, &recordingSender{}, slog.Default(), "not a cron spec")
	if err := d.Start(); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}
