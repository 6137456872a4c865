// Package git implements ports.VCSBackend on top of the git command line.
package git

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// breakerThreshold is the number of consecutive failures that opens a mirror's breaker.
const breakerThreshold = 5

// Git runs git commands. Clone and fetch are retried with exponential backoff and
// guarded by one circuit breaker per mirror host.
type Git struct {
	binary     string
	retries    uint64
	newBackOff func() backoff.BackOff

	mu       sync.RWMutex
	breakers map[string]*circuit.Breaker
}

// Option configures a Git.
type Option func(*Git)

// WithBinary sets the git executable.
func WithBinary(path string) Option {
	return func(g *Git) { g.binary = path }
}

// WithBackOff sets the backoff policy used between retries.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(g *Git) { g.newBackOff = fn }
}

// New creates a Git that retries network operations up to retries times.
func New(retries uint64, opts ...Option) *Git {
	g := &Git{
		binary:     "git",
		retries:    retries,
		newBackOff: defaultBackOff,
		breakers:   make(map[string]*circuit.Breaker),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.Reset()
	return b
}

// Clone creates a bare repository at dir from url.
func (g *Git) Clone(ctx context.Context, url, dir string) error {
	return g.remote(ctx, url, func() error {
		// A failed attempt can leave a partial repository behind.
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrGitCommandFailed.Error()), "path", dir)
		}
		_, err := g.run(ctx, nil, "clone", "--bare", "--quiet", url, dir)
		return err
	})
}

// Fetch imports refs from url into the repository at dir.
func (g *Git) Fetch(ctx context.Context, dir, url, refspec string) error {
	return g.remote(ctx, url, func() error {
		_, err := g.run(ctx, nil, "--git-dir", dir, "fetch", "--quiet", url, refspec)
		return err
	})
}

// HasObject reports whether the repository at dir holds hash.
func (g *Git) HasObject(ctx context.Context, dir string, hash domain.ContentHash) (bool, error) {
	//nolint:gosec // arguments are a repository path and a validated hash
	cmd := exec.CommandContext(ctx, g.binary, "--git-dir", dir, "cat-file", "-e", hash.String())
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	gitErr := zerr.Wrap(err, domain.ErrGitCommandFailed.Error())
	return false, zerr.With(gitErr, "hash", hash.String())
}

// ObjectType returns the type of hash as reported by git.
func (g *Git) ObjectType(ctx context.Context, dir string, hash domain.ContentHash) (string, error) {
	return g.run(ctx, nil, "--git-dir", dir, "cat-file", "-t", hash.String())
}

// Checkout writes the tree hash into dest through a throwaway index, overwriting existing files.
func (g *Git) Checkout(ctx context.Context, dir string, hash domain.ContentHash, dest string) error {
	tmp, err := os.MkdirTemp("", "pak-index-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrGitCommandFailed.Error())
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	env := []string{"GIT_INDEX_FILE=" + filepath.Join(tmp, "index")}
	if _, err := g.run(ctx, env, "--git-dir", dir, "read-tree", hash.String()); err != nil {
		return err
	}
	prefix := filepath.Clean(dest) + string(filepath.Separator)
	_, err = g.run(ctx, env, "--git-dir", dir, "checkout-index", "--all", "--force", "--prefix="+prefix)
	return err
}

// remote runs op with retries under the breaker of url's host.
func (g *Git) remote(ctx context.Context, rawURL string, op func() error) error {
	host := mirrorHost(rawURL)
	breaker := g.breaker(host)
	if !breaker.Ready() {
		return zerr.With(domain.ErrMirrorUnavailable, "host", host)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), g.retries), ctx)
	err := backoff.Retry(func() error {
		return breaker.Call(op, 0)
	}, policy)
	if err != nil {
		return zerr.With(err, "url", rawURL)
	}
	return nil
}

func (g *Git) breaker(host string) *circuit.Breaker {
	g.mu.RLock()
	b, ok := g.breakers[host]
	g.mu.RUnlock()
	if ok {
		return b
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.breakers[host]; ok {
		return b
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Reset()

	b = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(breakerThreshold),
	})
	g.breakers[host] = b
	return b
}

func (g *Git) run(ctx context.Context, env []string, args ...string) (string, error) {
	//nolint:gosec // arguments are built from registry urls, depot paths and validated hashes
	cmd := exec.CommandContext(ctx, g.binary, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		gitErr := zerr.Wrap(err, domain.ErrGitCommandFailed.Error())
		gitErr = zerr.With(gitErr, "command", strings.Join(args, " "))
		return "", zerr.With(gitErr, "stderr", strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// mirrorHost groups mirrors for circuit breaking: the URL host, the host of an
// scp-like address, or "local" for filesystem paths.
func mirrorHost(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	if at := strings.Index(raw, "@"); at >= 0 {
		rest := raw[at+1:]
		if colon := strings.Index(rest, ":"); colon > 0 {
			return rest[:colon]
		}
	}
	return "local"
}
