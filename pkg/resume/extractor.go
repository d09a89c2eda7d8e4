package resume

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"
)

// maxTextBytes caps how much resume text is pulled into memory
const maxTextBytes = 1 << 20

// Extractor fetches plain resume text from the storage service that hosts
// uploaded documents. Parsing binary formats is that service's job; by the
// time a URL reaches us it serves extracted text.
type Extractor struct {
	client *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ domain.ResumeTextExtractor = (*Extractor)(nil)

func (e *Extractor) ExtractText(ctx context.Context, resumeURL string) (string, error) {
	parsed, err := url.Parse(resumeURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("resume: invalid url %q", resumeURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resumeURL, nil)
	if err != nil {
		return "", fmt.Errorf("resume: build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resume: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resume: fetch returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "text/") {
		return "", fmt.Errorf("resume: unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTextBytes))
	if err != nil {
		return "", fmt.Errorf("resume: read body: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("resume: document contains no text")
	}
	return text, nil
}
