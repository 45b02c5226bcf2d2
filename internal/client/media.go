package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/neekaru/whatsapp-group-gateway/internal/utils"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"google.golang.org/protobuf/proto"
)

type uploadFunc func(ctx context.Context, data []byte, mediaType whatsmeow.MediaType) (whatsmeow.UploadResponse, error)

type thumbnailFunc func(video []byte) []byte

// mediaTypeFor picks the WhatsApp media type for a MIME type.
// Anything that is neither image nor video goes out as a document so the caption survives.
func mediaTypeFor(mimeType string) whatsmeow.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return whatsmeow.MediaImage
	case strings.HasPrefix(mimeType, "video/"):
		return whatsmeow.MediaVideo
	default:
		return whatsmeow.MediaDocument
	}
}

// buildMediaMessage uploads media and builds the captioned message that references it
func buildMediaMessage(ctx context.Context, upload uploadFunc, caption string, media *Media, thumbnail thumbnailFunc) (*waE2E.Message, error) {
	if len(media.Data) == 0 {
		return nil, fmt.Errorf("media is empty")
	}

	mediaType := mediaTypeFor(media.MimeType)
	uploaded, err := upload(ctx, media.Data, mediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	switch mediaType {
	case whatsmeow.MediaImage:
		return &waE2E.Message{
			ImageMessage: &waE2E.ImageMessage{
				Caption:       proto.String(caption),
				URL:           proto.String(uploaded.URL),
				DirectPath:    proto.String(uploaded.DirectPath),
				MediaKey:      uploaded.MediaKey,
				Mimetype:      proto.String(media.MimeType),
				FileEncSHA256: uploaded.FileEncSHA256,
				FileSHA256:    uploaded.FileSHA256,
				FileLength:    proto.Uint64(uint64(len(media.Data))),
			},
		}, nil
	case whatsmeow.MediaVideo:
		msg := &waE2E.VideoMessage{
			Caption:       proto.String(caption),
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			Mimetype:      proto.String(media.MimeType),
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uint64(len(media.Data))),
		}
		if thumbnail != nil {
			if thumb := thumbnail(media.Data); len(thumb) > 0 {
				msg.JPEGThumbnail = thumb
			}
		}
		return &waE2E.Message{VideoMessage: msg}, nil
	default:
		fileName := media.FileName
		if fileName == "" {
			fileName = "file"
		}
		return &waE2E.Message{
			DocumentMessage: &waE2E.DocumentMessage{
				Caption:       proto.String(caption),
				URL:           proto.String(uploaded.URL),
				DirectPath:    proto.String(uploaded.DirectPath),
				MediaKey:      uploaded.MediaKey,
				Mimetype:      proto.String(media.MimeType),
				FileEncSHA256: uploaded.FileEncSHA256,
				FileSHA256:    uploaded.FileSHA256,
				FileLength:    proto.Uint64(uint64(len(media.Data))),
				FileName:      proto.String(fileName),
				Title:         proto.String(fileName),
			},
		}, nil
	}
}

// videoThumbnail renders the first frame through ffmpeg. A missing ffmpeg binary just means no thumbnail.
func (c *Client) videoThumbnail(video []byte) []byte {
	thumb, err := utils.VideoThumbnail(video, 0, 72)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Video thumbnail unavailable")
		return nil
	}
	return thumb
}
