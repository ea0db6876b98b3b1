// Package forge lists the open pull requests of a repository's GitHub remote.
//
// The client only needs read access; a personal access token with the "repo"
// scope is required for private repositories.
package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/go-github/v29/github"
	"golang.org/x/oauth2"
)

const DefaultPullRequestLimit = 10

type Label struct {
	Name  string
	Color string
}

type PullRequest struct {
	Number int
	Title  string
	Labels []Label
	// RemoteRef is the ref the pull request head can be fetched from.
	RemoteRef string
}

type State struct {
	Remote       string
	PullRequests []PullRequest
}

var githubRemotePrefix = regexp.MustCompile(`^.*github\.com[/:]`)

// ParseRemote extracts owner and repository name from an https, ssh or scp
// style GitHub remote URL.
func ParseRemote(remoteURL string) (owner, repo string, err error) {
	raw := strings.TrimSpace(remoteURL)
	rest := githubRemotePrefix.ReplaceAllString(raw, "")
	if rest == raw {
		return "", "", fmt.Errorf("not a GitHub remote: %q", remoteURL)
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	var parts []string
	for p := range strings.SplitSeq(rest, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", fmt.Errorf("GitHub remote without owner/repository: %q", remoteURL)
	}
	return parts[0], parts[1], nil
}

// Client is used for interacting with the GitHub API.
type Client struct {
	gh *github.Client
}

// NewClient returns a client authenticated with token. An empty token gives
// an anonymous client, enough for public repositories.
func NewClient(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return &Client{gh: github.NewClient(httpClient)}
}

// NewClientWithBaseURL targets a GitHub Enterprise (or test) API endpoint.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	gh := github.NewClient(httpClient)
	gh.BaseURL = u
	return &Client{gh: gh}, nil
}

// See https://developer.github.com/v3/pulls/#list-pull-requests
func (c *Client) OpenPullRequests(ctx context.Context, owner, repo string, limit int) ([]PullRequest, error) {
	if limit <= 0 {
		limit = DefaultPullRequestLimit
	}
	opts := &github.PullRequestListOptions{
		State:       "open",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list pull requests of %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d listing pull requests of %s/%s", resp.StatusCode, owner, repo)
	}
	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		if len(out) == limit {
			break
		}
		item := PullRequest{
			Number:    pr.GetNumber(),
			Title:     pr.GetTitle(),
			RemoteRef: fmt.Sprintf("pull/%d/head", pr.GetNumber()),
		}
		for _, l := range pr.Labels {
			item.Labels = append(item.Labels, Label{Name: l.GetName(), Color: l.GetColor()})
		}
		out = append(out, item)
	}
	return out, nil
}

// Load resolves the remote and fetches its open pull requests.
func Load(ctx context.Context, c *Client, remoteURL string, limit int) (*State, error) {
	owner, repo, err := ParseRemote(remoteURL)
	if err != nil {
		return nil, err
	}
	prs, err := c.OpenPullRequests(ctx, owner, repo, limit)
	if err != nil {
		return nil, err
	}
	return &State{Remote: remoteURL, PullRequests: prs}, nil
}
