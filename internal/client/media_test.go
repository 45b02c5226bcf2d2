package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow"
)

type fakeUpload struct {
	gotType whatsmeow.MediaType
	err     error
}

func (f *fakeUpload) upload(_ context.Context, data []byte, mediaType whatsmeow.MediaType) (whatsmeow.UploadResponse, error) {
	f.gotType = mediaType
	if f.err != nil {
		return whatsmeow.UploadResponse{}, f.err
	}
	return whatsmeow.UploadResponse{
		URL:        "https://mmg.whatsapp.net/x",
		DirectPath: "/v/x",
		MediaKey:   []byte("key"),
		FileLength: uint64(len(data)),
	}, nil
}

func TestMediaTypeFor(t *testing.T) {
	assert.Equal(t, whatsmeow.MediaImage, mediaTypeFor("image/png"))
	assert.Equal(t, whatsmeow.MediaVideo, mediaTypeFor("video/mp4"))
	assert.Equal(t, whatsmeow.MediaDocument, mediaTypeFor("audio/ogg"))
	assert.Equal(t, whatsmeow.MediaDocument, mediaTypeFor("application/pdf"))
	assert.Equal(t, whatsmeow.MediaDocument, mediaTypeFor(""))
}

func TestBuildMediaMessage_Image(t *testing.T) {
	up := &fakeUpload{}
	media := &Media{Data: []byte("png-bytes"), MimeType: "image/png", FileName: "cat.png"}

	msg, err := buildMediaMessage(context.Background(), up.upload, "look", media, nil)
	require.NoError(t, err)

	assert.Equal(t, whatsmeow.MediaImage, up.gotType)
	require.NotNil(t, msg.GetImageMessage())
	assert.Equal(t, "look", msg.GetImageMessage().GetCaption())
	assert.Equal(t, "image/png", msg.GetImageMessage().GetMimetype())
	assert.Equal(t, "/v/x", msg.GetImageMessage().GetDirectPath())
	assert.Equal(t, uint64(9), msg.GetImageMessage().GetFileLength())
}

func TestBuildMediaMessage_VideoWithThumbnail(t *testing.T) {
	up := &fakeUpload{}
	media := &Media{Data: []byte("mp4"), MimeType: "video/mp4"}

	msg, err := buildMediaMessage(context.Background(), up.upload, "clip", media, func([]byte) []byte { return []byte("jpg") })
	require.NoError(t, err)

	require.NotNil(t, msg.GetVideoMessage())
	assert.Equal(t, "clip", msg.GetVideoMessage().GetCaption())
	assert.Equal(t, []byte("jpg"), msg.GetVideoMessage().GetJPEGThumbnail())
}

func TestBuildMediaMessage_DocumentKeepsCaptionAndName(t *testing.T) {
	up := &fakeUpload{}
	media := &Media{Data: []byte("%PDF"), MimeType: "application/pdf", FileName: "report.pdf"}

	msg, err := buildMediaMessage(context.Background(), up.upload, "monthly", media, nil)
	require.NoError(t, err)

	assert.Equal(t, whatsmeow.MediaDocument, up.gotType)
	require.NotNil(t, msg.GetDocumentMessage())
	assert.Equal(t, "monthly", msg.GetDocumentMessage().GetCaption())
	assert.Equal(t, "report.pdf", msg.GetDocumentMessage().GetFileName())
}

func TestBuildMediaMessage_Errors(t *testing.T) {
	_, err := buildMediaMessage(context.Background(), (&fakeUpload{}).upload, "x", &Media{MimeType: "image/png"}, nil)
	assert.EqualError(t, err, "media is empty")

	up := &fakeUpload{err: errors.New("cdn down")}
	_, err = buildMediaMessage(context.Background(), up.upload, "x", &Media{Data: []byte("a"), MimeType: "image/png"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload media")
	assert.ErrorIs(t, err, up.err)
}
