package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	gax "github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"textstats/internal/domain"
)

// GoogleDocMimeType marks native documents that must be exported as text.
const GoogleDocMimeType = "application/vnd.google-apps.document"

// Config configures the drive folder source.
type Config struct {
	BaseURL  string
	FolderID string
	MimeType string
	TokenEnv string
	Timeout  time.Duration
}

// Source lists and downloads the files of one drive folder.
// It expects an already issued bearer token; it never authenticates itself.
type Source struct {
	files      *gdrive.FilesService
	folderID   string
	mimeType   string
	maxRetries int
	backoff    gax.Backoff
}

// NewSource creates a drive source using the token found in cfg.TokenEnv.
func NewSource(cfg Config) (*Source, error) {
	if cfg.FolderID == "" {
		return nil, errors.New("drive folder id missing")
	}
	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("missing drive access token in env %s", cfg.TokenEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/drive/v3"
	}
	if cfg.MimeType == "" {
		cfg.MimeType = "text/plain"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}

	ctx := context.Background()
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	client.Timeout = t
	svc, err := gdrive.NewService(ctx,
		option.WithHTTPClient(client),
		option.WithEndpoint(strings.TrimSuffix(cfg.BaseURL, "/")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return &Source{
		files:      svc.Files,
		folderID:   cfg.FolderID,
		mimeType:   cfg.MimeType,
		maxRetries: 3,
		backoff:    gax.Backoff{Initial: 200 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2},
	}, nil
}

// Name returns the identifier of this source implementation.
func (s *Source) Name() string { return "drive" }

// ListDocuments lists the folder ordered by name and downloads every file.
func (s *Source) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	files, err := s.listFiles(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(files))
	for i, f := range files {
		text, err := s.download(ctx, f.Id)
		if err != nil {
			return nil, fmt.Errorf("drive download %s: %w", f.Name, err)
		}
		docs = append(docs, domain.Document{Ordinal: i + 1, Name: f.Name, Text: text})
	}
	return docs, nil
}

func (s *Source) query() string {
	esc := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		esc.Replace(s.folderID), esc.Replace(s.mimeType))
}

// listFiles walks every result page. A retried listing starts over from
// the first page.
func (s *Source) listFiles(ctx context.Context) ([]*gdrive.File, error) {
	var all []*gdrive.File
	err := s.invoke(ctx, func(ctx context.Context) error {
		all = all[:0]
		return s.files.List().
			Q(s.query()).
			OrderBy("name").
			Fields("nextPageToken, files(id, name)").
			PageSize(100).
			Pages(ctx, func(page *gdrive.FileList) error {
				all = append(all, page.Files...)
				return nil
			})
	})
	if err != nil {
		return nil, fmt.Errorf("drive list: %w", err)
	}
	return all, nil
}

func (s *Source) download(ctx context.Context, id string) (string, error) {
	var text string
	err := s.invoke(ctx, func(ctx context.Context) error {
		var (
			resp *http.Response
			err  error
		)
		if s.mimeType == GoogleDocMimeType {
			resp, err = s.files.Export(id, "text/plain").Context(ctx).Download()
		} else {
			resp, err = s.files.Get(id).Context(ctx).Download()
		}
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		text = string(body)
		return nil
	})
	return text, err
}

// invoke runs call, retrying on 429 and 5xx responses.
func (s *Source) invoke(ctx context.Context, call func(context.Context) error) error {
	return gax.Invoke(ctx, func(ctx context.Context, _ gax.CallSettings) error {
		return call(ctx)
	}, gax.WithRetry(func() gax.Retryer {
		return &limitedRetryer{
			inner: gax.OnHTTPCodes(s.backoff,
				http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout,
			),
			left: s.maxRetries,
		}
	}))
}

type limitedRetryer struct {
	inner gax.Retryer
	left  int
}

func (r *limitedRetryer) Retry(err error) (time.Duration, bool) {
	if r.left <= 0 {
		return 0, false
	}
	r.left--
	return r.inner.Retry(err)
}
