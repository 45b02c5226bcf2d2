package media

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/rs/zerolog"
)

// Service downloads remote files as message media
type Service struct {
	http   *resty.Client
	logger zerolog.Logger
}

// NewService creates a new media service
func NewService(logger zerolog.Logger) *Service {
	return &Service{
		http:   resty.New().SetHeader("User-Agent", "whatsapp-group-gateway"),
		logger: logger,
	}
}

// Fetch downloads mediaURL and works out its MIME type and file name
func (s *Service) Fetch(ctx context.Context, mediaURL string) (*client.Media, error) {
	parsed, err := url.Parse(mediaURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid media URL %q", mediaURL)
	}

	resp, err := s.http.R().SetContext(ctx).Get(mediaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download media from URL: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to download media, status: %s", resp.Status())
	}

	data := resp.Body()
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to download media: empty body")
	}

	media := &client.Media{
		Data:     data,
		MimeType: detectMimeType(resp.Header().Get("Content-Type"), data),
		FileName: fileNameFrom(parsed, resp.Header().Get("Content-Disposition")),
	}

	s.logger.Info().
		Str("url", mediaURL).
		Str("mime", media.MimeType).
		Str("file", media.FileName).
		Int("bytes", len(data)).
		Msg("Media downloaded")

	return media, nil
}

// detectMimeType trusts a specific Content-Type header and sniffs the body otherwise
func detectMimeType(header string, data []byte) string {
	if header != "" {
		if mediaType, _, err := mime.ParseMediaType(header); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	detected := mimetype.Detect(data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return detected
}

// fileNameFrom takes the last URL path segment, then the Content-Disposition filename
func fileNameFrom(u *url.URL, contentDisposition string) string {
	if name := path.Base(u.Path); name != "." && name != "/" && name != "" {
		return name
	}

	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if fn := strings.TrimSpace(params["filename"]); fn != "" {
				return fn
			}
		}
	}
	return ""
}
