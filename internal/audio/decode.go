package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat indicates a track whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode, nil
	case ".ogg", ".oga":
		return vorbis.Decode, nil
	case ".wav":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(rc)
		}, nil
	case ".flac":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return flac.Decode(rc)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func openTrack(track Track) (beep.StreamSeekCloser, beep.Format, error) {
	decode, err := decoderFor(track.Path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	file, err := os.Open(track.Path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open track: %w", err)
	}

	stream, format, err := decode(file)
	if err != nil {
		_ = file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode track %s: %w", track.DisplayTitle(), err)
	}
	return stream, format, nil
}
