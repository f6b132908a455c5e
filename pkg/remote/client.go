// Package remote talks to the web-based code editor. The service has no API,
// so listings and file contents are scraped from the pages meant for the
// browser.
package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/sidkik/editsync/pkg/errors"
)

const (
	projectTitleSelector = "div.project-title"
	fileSelector         = "li:not(.backarrow)"
	editorSelector       = "div#editor"

	// The file listing for a project is shown on the page of its entry
	// point.
	listingPage = "Main"

	defaultTimeout = 30 * time.Second
)

// Client is a client for a single remote editor instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the editor served at `baseURL`.
func New(baseURL string) (Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return Client{}, errors.WithContext(err, "parse url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Client{}, errors.NewFriendlyError(
			"The remote URL %q must start with http:// or https://.", baseURL)
	}

	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// BaseURL returns the address of the remote editor.
func (c Client) BaseURL() string {
	return c.baseURL
}

// ListProjects returns the names of all projects on the remote.
func (c Client) ListProjects() ([]string, error) {
	doc, err := c.getDocument(c.baseURL)
	if err != nil {
		return nil, err
	}
	return texts(doc.Find(projectTitleSelector)), nil
}

// ListFiles returns the basenames of the files in `project`, in the order
// they're displayed by the remote.
func (c Client) ListFiles(project string) ([]string, error) {
	doc, err := c.getDocument(c.projectURL(project, listingPage))
	if err != nil {
		return nil, err
	}
	return texts(doc.Find(fileSelector)), nil
}

// FetchFile returns the contents of the editor for `basename`. The contents
// are returned exactly as they're embedded in the page, so HTML entities are
// still encoded.
func (c Client) FetchFile(project, basename string) (string, error) {
	pageURL := c.projectURL(project, basename)
	doc, err := c.getDocument(pageURL)
	if err != nil {
		return "", err
	}

	editor := doc.Find(editorSelector).First()
	if editor.Length() == 0 {
		return "", errors.UnexpectedResponse{URL: pageURL, Reason: "no editor on page"}
	}

	contents, err := editor.Html()
	if err != nil {
		return "", errors.WithContext(err, "render editor")
	}
	return contents, nil
}

type updateRequest struct {
	File     string `json:"file"`
	Contents string `json:"contents"`
}

// PushFile overwrites the remote contents of `basename`.
func (c Client) PushFile(project, basename, contents string) error {
	body, err := json.Marshal(updateRequest{File: basename, Contents: contents})
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	resp, err := c.do(http.MethodPost, c.projectURL(project, "__update"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	return discard(resp)
}

// Restart restarts the program running `project`.
func (c Client) Restart(project string) error {
	resp, err := c.do(http.MethodGet, c.projectURL(project, "__restart"), nil)
	if err != nil {
		return err
	}
	return discard(resp)
}

func (c Client) projectURL(project, page string) string {
	return fmt.Sprintf("%s/projects/%s/%s", c.baseURL,
		url.PathEscape(project), url.PathEscape(page))
}

// do sends a request and checks that it succeeded. The caller is responsible
// for closing the response body.
func (c Client) do(method, reqURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, reqURL, body)
	if err != nil {
		return nil, errors.WithContext(err, "new request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, reqURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WithContext(err, strings.ToLower(method))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, errors.BadStatus{URL: reqURL, Status: resp.Status}
	}
	return resp, nil
}

func (c Client) getDocument(pageURL string) (*goquery.Document, error) {
	resp, err := c.do(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.WithContext(err, "parse page")
	}
	return doc, nil
}

// discard drains and closes the body so that the connection can be reused.
func discard(resp *http.Response) error {
	defer resp.Body.Close()
	if _, err := io.Copy(ioutil.Discard, resp.Body); err != nil {
		return errors.WithContext(err, "read response")
	}
	return nil
}

func texts(selection *goquery.Selection) []string {
	var result []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			result = append(result, text)
		}
	})
	return result
}
