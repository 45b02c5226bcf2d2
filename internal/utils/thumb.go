package utils

import (
	"bytes"
	"fmt"
	"io"

	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// VideoThumbnail generates a JPEG thumbnail of the given width from a video at a specific frame.
func VideoThumbnail(content []byte, frameNum int, width int) ([]byte, error) {
	inputReader, inputWriter := io.Pipe()
	outputReader, outputWriter := io.Pipe()

	go func() {
		_, err := inputWriter.Write(content)
		inputWriter.CloseWithError(err)
	}()

	go func() {
		var stderr bytes.Buffer
		err := ffmpeg_go.Input("pipe:0").
			Filter("scale", ffmpeg_go.Args{fmt.Sprintf("%d:-1", width)}).
			Filter("select", ffmpeg_go.Args{fmt.Sprintf("gte(n,%d)", frameNum)}).
			Output("pipe:", ffmpeg_go.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
			WithInput(inputReader).
			WithOutput(outputWriter).
			WithErrorOutput(&stderr).
			OverWriteOutput().
			Run()
		// Unblock the writer if ffmpeg exited before reading everything
		inputReader.Close()
		if err != nil {
			err = fmt.Errorf("ffmpeg: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		outputWriter.CloseWithError(err)
	}()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(outputReader); err != nil {
		return nil, err
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("no thumbnail data returned")
	}
	return buf.Bytes(), nil
}
