// Package pcm implements the AudioEngine port with a pure-Go stack:
// go-audio/wav, go-mp3 and oggvorbis decoders, an oto output device and a
// gonum-based spectral analyzer feeding the visualizer.
package pcm

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// bytesPerFrame is one interleaved stereo sample pair of 16-bit samples.
const bytesPerFrame = 4

// Clip is a fully decoded track: 16-bit little-endian interleaved stereo PCM
// plus display metadata.
type Clip struct {
	PCM        []byte
	SampleRate int
	Track      domain.Track
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	frames := len(c.PCM) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// Decode reads and fully decodes an audio file. The format is chosen by file
// extension; wav, mp3 and ogg are supported.
func Decode(path string) (*Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, domain.ErrFileNotFound
	}

	var (
		clip *Clip
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		clip, err = decodeWAV(path)
	case ".mp3":
		clip, err = decodeMP3(path)
	case ".ogg", ".oga":
		clip, err = decodeOGG(path)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	clip.Track.FilePath = path
	clip.Track.SampleRate = clip.SampleRate
	clip.Track.Duration = clip.Duration()
	fillMetadata(path, &clip.Track)

	return clip, nil
}

// decodeWAV decodes a RIFF/WAVE file via go-audio.
func decodeWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDecodeError(path, "wav", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, domain.NewDecodeError(path, "wav", err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, domain.NewDecodeError(path, "wav", domain.ErrUnsupportedFormat)
	}

	shift := int(buf.SourceBitDepth) - 16
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			samples[i] = int16(v >> shift)
		case shift < 0:
			samples[i] = int16(v << -shift)
		default:
			samples[i] = int16(v)
		}
	}

	return &Clip{
		PCM:        interleaveStereo(samples, buf.Format.NumChannels),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// decodeMP3 decodes an MP3 file via go-mp3, which always yields 16-bit
// little-endian stereo.
func decodeMP3(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDecodeError(path, "mp3", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, domain.NewDecodeError(path, "mp3", err)
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, decoder); err != nil {
		return nil, domain.NewDecodeError(path, "mp3", err)
	}

	return &Clip{
		PCM:        out.Bytes(),
		SampleRate: decoder.SampleRate(),
	}, nil
}

// decodeOGG decodes an Ogg Vorbis file via oggvorbis.
func decodeOGG(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDecodeError(path, "ogg", err)
	}
	defer f.Close()

	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, domain.NewDecodeError(path, "ogg", err)
	}

	samples := make([]int16, len(data))
	for i, v := range data {
		samples[i] = floatToInt16(float64(v))
	}

	return &Clip{
		PCM:        interleaveStereo(samples, format.Channels),
		SampleRate: format.SampleRate,
	}, nil
}

// fillMetadata reads ID3/Vorbis tags into the track, falling back to the
// file name for the title. Tag errors are not fatal; a track without tags is
// still playable.
func fillMetadata(path string, track *domain.Track) {
	track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return
	}

	if title := meta.Title(); title != "" {
		track.Title = title
	}
	track.Artist = meta.Artist()
	track.Album = meta.Album()
	if pic := meta.Picture(); pic != nil {
		track.AlbumArt = pic.Data
	}
}

// interleaveStereo converts interleaved samples of any channel count to
// 16-bit little-endian stereo bytes. Mono is duplicated into both channels;
// additional channels beyond the first two are dropped.
func interleaveStereo(samples []int16, channels int) []byte {
	if channels < 1 {
		return nil
	}
	frames := len(samples) / channels
	out := make([]byte, frames*bytesPerFrame)

	for i := 0; i < frames; i++ {
		left := samples[i*channels]
		right := left
		if channels > 1 {
			right = samples[i*channels+1]
		}
		out[i*4] = byte(left)
		out[i*4+1] = byte(uint16(left) >> 8)
		out[i*4+2] = byte(right)
		out[i*4+3] = byte(uint16(right) >> 8)
	}

	return out
}

// floatToInt16 converts a normalized sample to 16-bit, clamping overshoot.
func floatToInt16(v float64) int16 {
	v *= 32767
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// resampleStereo linearly resamples 16-bit stereo PCM from one rate to
// another. Linear interpolation is plenty for playback; the analyzer only
// ever sees the resampled stream.
func resampleStereo(pcm []byte, from, to int) []byte {
	if from == to || from <= 0 || to <= 0 {
		return pcm
	}

	inFrames := len(pcm) / bytesPerFrame
	if inFrames < 2 {
		return pcm
	}
	outFrames := int(int64(inFrames) * int64(to) / int64(from))
	out := make([]byte, outFrames*bytesPerFrame)

	ratio := float64(inFrames-1) / float64(outFrames-1)
	for i := 0; i < outFrames; i++ {
		srcPos := float64(i) * ratio
		i0 := int(srcPos)
		i1 := i0 + 1
		if i1 >= inFrames {
			i1 = inFrames - 1
		}
		t := srcPos - float64(i0)

		for ch := 0; ch < 2; ch++ {
			s0 := int16(uint16(pcm[i0*4+ch*2]) | uint16(pcm[i0*4+ch*2+1])<<8)
			s1 := int16(uint16(pcm[i1*4+ch*2]) | uint16(pcm[i1*4+ch*2+1])<<8)
			v := int16(float64(s0) + (float64(s1)-float64(s0))*t)
			out[i*4+ch*2] = byte(v)
			out[i*4+ch*2+1] = byte(uint16(v) >> 8)
		}
	}

	return out
}
