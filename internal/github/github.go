// Package github looks up the Code Society Lab repositories the bot advertises.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"
)

const owner = "code-society-lab"

const (
	GraceRepo  = "grace"
	CursifRepo = "cursif"
)

// Service wraps a GitHub client. Without a token it cannot connect and every
// lookup fails with ErrNoToken.
type Service struct {
	client *gh.Client
	token  bool
}

var ErrNoToken = errors.New("github: no api token configured")

// New creates a Service authenticated with token. An empty token yields a
// Service that reports CanConnect false.
func New(token string) *Service {
	if token == "" {
		return &Service{}
	}
	return &Service{client: gh.NewClient(nil).WithAuthToken(token), token: true}
}

// NewWithClient wraps an existing client, for example one pointed at a test
// server.
func NewWithClient(client *gh.Client) *Service {
	return &Service{client: client, token: client != nil}
}

func (s *Service) CanConnect() bool {
	return s != nil && s.token
}

func (s *Service) Grace(ctx context.Context) (*gh.Repository, error) {
	return s.repo(ctx, GraceRepo)
}

func (s *Service) Cursif(ctx context.Context) (*gh.Repository, error) {
	return s.repo(ctx, CursifRepo)
}

// Projects returns both repositories in a fixed order.
func (s *Service) Projects(ctx context.Context) ([]*gh.Repository, error) {
	grace, err := s.Grace(ctx)
	if err != nil {
		return nil, err
	}
	cursif, err := s.Cursif(ctx)
	if err != nil {
		return nil, err
	}
	return []*gh.Repository{grace, cursif}, nil
}

func (s *Service) repo(ctx context.Context, name string) (*gh.Repository, error) {
	if !s.CanConnect() {
		return nil, ErrNoToken
	}

	r, resp, err := s.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("github: repository %s/%s not found: %w", owner, name, err)
		}
		return nil, fmt.Errorf("github: failed to get %s/%s: %w", owner, name, err)
	}
	return r, nil
}
