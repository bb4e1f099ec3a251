package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aottr/releasor/internal/utils"
	"github.com/schollz/progressbar/v3"
)

type Release struct {
	ID        int64  `json:"id"`
	TagName   string `json:"tag_name"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
	UploadURL string `json:"upload_url"`
}

type NewRelease struct {
	TagName              string `json:"tag_name"`
	Name                 string `json:"name"`
	GenerateReleaseNotes bool   `json:"generate_release_notes"`
}

type FileUpdate struct {
	Message string `json:"message"`
	Content string `json:"content"` // base64
	SHA     string `json:"sha,omitempty"`
}

type Issue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

type NewIssue struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// API is the subset of GitHub the channels publish through.
type API interface {
	CreateRelease(ctx context.Context, repo string, r NewRelease) (*Release, error)
	ReleaseByTag(ctx context.Context, repo, tag string) (*Release, error)
	UploadAsset(ctx context.Context, uploadURL, path, name, contentType string) error
	FileSHA(ctx context.Context, repo, path string) (string, error)
	PutFile(ctx context.Context, repo, path string, update FileUpdate) error
	CreateIssue(ctx context.Context, repo string, issue NewIssue) (*Issue, error)
}

var _ API = (*Client)(nil)

// UploadTarget strips the "{?name,label}" URI template suffix of an upload_url.
func UploadTarget(uploadURL string) string {
	if i := strings.IndexByte(uploadURL, '{'); i >= 0 {
		return uploadURL[:i]
	}
	return uploadURL
}

// EncodeContent base64-encodes file contents for the contents API.
func EncodeContent(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func (c *Client) CreateRelease(ctx context.Context, repo string, r NewRelease) (*Release, error) {
	var rel Release
	if err := c.call(ctx, http.MethodPost, c.url("/repos/%s/releases", repo), r, &rel); err != nil {
		return nil, err
	}
	if rel.UploadURL == "" {
		return nil, fmt.Errorf("missing upload_url in response")
	}
	return &rel, nil
}

func (c *Client) ReleaseByTag(ctx context.Context, repo, tag string) (*Release, error) {
	var rel Release
	if err := c.call(ctx, http.MethodGet, c.url("/repos/%s/releases/tags/%s", repo, url.PathEscape(tag)), nil, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// UploadAsset streams the file at path to a release upload target.
func (c *Client) UploadAsset(ctx context.Context, uploadURL, path, name, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	target := UploadTarget(uploadURL) + "?name=" + url.QueryEscape(name)
	req, err := c.newRequest(ctx, http.MethodPost, target, f)
	if err != nil {
		return err
	}
	if c.Progress != nil {
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(c.Progress),
			progressbar.OptionSetDescription(name),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		pr := progressbar.NewReader(f, bar)
		req.Body = &pr
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", contentType)

	c.Out.Infof(utils.LabelFrom(ctx, "github"), "Uploading %s", name)
	if _, err := c.send(req); err != nil {
		return fmt.Errorf("upload of %s failed: %w", name, err)
	}
	return nil
}

// FileSHA returns the blob sha of an existing file, or ErrNotFound.
func (c *Client) FileSHA(ctx context.Context, repo, path string) (string, error) {
	var content struct {
		SHA string `json:"sha"`
	}
	if err := c.call(ctx, http.MethodGet, c.url("/repos/%s/contents/%s", repo, path), nil, &content); err != nil {
		return "", err
	}
	return content.SHA, nil
}

// PutFile creates or, when update.SHA is set, replaces a file.
func (c *Client) PutFile(ctx context.Context, repo, path string, update FileUpdate) error {
	return c.call(ctx, http.MethodPut, c.url("/repos/%s/contents/%s", repo, path), update, nil)
}

func (c *Client) CreateIssue(ctx context.Context, repo string, issue NewIssue) (*Issue, error) {
	var out Issue
	if err := c.call(ctx, http.MethodPost, c.url("/repos/%s/issues", repo), issue, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
