package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"
	// DefaultFilename is the Gist file that holds the catalog.
	DefaultFilename = "keys_db.json"
	// DefaultTimeout bounds every remote request.
	DefaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of a failed response is quoted in errors.
	maxErrorBody = 512
)

// RemoteOptions configures a RemoteStore.
type RemoteOptions struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// DocumentID is the Gist ID.
	DocumentID string
	// Token is sent as a bearer token.
	Token string
	// Filename defaults to DefaultFilename.
	Filename string
	// Timeout defaults to DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// RemoteStore keeps the catalog in one file of a GitHub Gist.
//
// There is no append primitive: every update is a full read followed by a
// full overwrite, and the overwrite carries no revision check. Two writers
// that read the same snapshot will each replace the document with only
// their own addition, and the last write wins.
type RemoteStore struct {
	client   *http.Client
	url      string
	token    string
	filename string
	reporter Reporter
}

// NewRemoteStore returns a store for the Gist described by opts.
func NewRemoteStore(opts RemoteOptions, reporter Reporter) *RemoteStore {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	filename := opts.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &RemoteStore{
		client:   client,
		url:      strings.TrimRight(baseURL, "/") + "/gists/" + opts.DocumentID,
		token:    opts.Token,
		filename: filename,
		reporter: reporter,
	}
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

type gistDocument struct {
	Files map[string]*gistFile `json:"files"`
}

// FetchAll downloads the remote catalog.
//
// On failure it returns an empty slice together with an error wrapping
// ErrNetwork, ErrAuth or ErrParse, and reports EventRemoteUnavailable.
// Callers are expected to carry on with the empty result.
func (s *RemoteStore) FetchAll(ctx context.Context) ([]Record, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		report(s.reporter, Event{Kind: EventRemoteUnavailable, Path: s.url, Err: err})
		return []Record{}, err
	}
	return records, nil
}

func (s *RemoteStore) fetch(ctx context.Context) ([]Record, error) {
	body, err := s.do(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	var doc gistDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding document: %v", kerrors.ErrParse, err)
	}

	file, ok := doc.Files[s.filename]
	if !ok || file == nil {
		return nil, fmt.Errorf("%w: document has no file %q", kerrors.ErrParse, s.filename)
	}

	content := []byte(file.Content)
	// Gists inline at most about 1 MB of a file; larger content must be fetched from raw_url.
	if file.Truncated && file.RawURL != "" {
		content, err = s.do(ctx, http.MethodGet, file.RawURL, nil)
		if err != nil {
			return nil, err
		}
	}

	return decodeRecords(content)
}

// ReplaceAll overwrites the remote catalog with records. It does not retry.
// Failures wrap ErrNetwork or ErrAuth and are reported as EventRemoteWriteFailed.
func (s *RemoteStore) ReplaceAll(ctx context.Context, records []Record) error {
	content, err := encodeRecords(records)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(gistDocument{
		Files: map[string]*gistFile{s.filename: {Content: string(content)}},
	})
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if _, err := s.do(ctx, http.MethodPatch, s.url, payload); err != nil {
		report(s.reporter, Event{Kind: EventRemoteWriteFailed, Path: s.url, Err: err})
		return err
	}
	return nil
}

func (s *RemoteStore) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", kerrors.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", kerrors.ErrNetwork, method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", kerrors.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(method, resp.StatusCode, data)
	}
	return data, nil
}

func statusError(method string, status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxErrorBody {
		snippet = snippet[:maxErrorBody] + "..."
	}

	kind := kerrors.ErrNetwork
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = kerrors.ErrAuth
	}
	return fmt.Errorf("%w: %s returned %d %s: %s", kind, method, status, http.StatusText(status), snippet)
}

// OfflineRemote stands in for the remote store when none is configured.
// Every call fails with ErrRemoteNotConfigured and reports nothing.
type OfflineRemote struct{}

// FetchAll always returns an empty catalog and ErrRemoteNotConfigured.
func (OfflineRemote) FetchAll(context.Context) ([]Record, error) {
	return []Record{}, kerrors.ErrRemoteNotConfigured
}

// ReplaceAll always returns ErrRemoteNotConfigured.
func (OfflineRemote) ReplaceAll(context.Context, []Record) error {
	return kerrors.ErrRemoteNotConfigured
}
