// This file is part of Beamrace.
//
// Beamrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Beamrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Beamrace.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter captures the video signal to disk as a WAV file. The file
// has three channels: horizontal sync, vertical sync and the pixel level. The
// sample rate is the frequency of the master clock, so that one sample is one
// tick, and the file can be opened in any audio editor and used like a three
// channel logic analyser trace.
//
// Samples are buffered and written to disk in blocks. The file is not valid
// until EndCapture() has been called.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/signal"
	"github.com/beamrace/beamrace/logger"
	"github.com/beamrace/beamrace/palette"
)

// NumChannels in the WAV file.
const NumChannels = 3

// BitDepth of each sample. Eight bit samples in a WAV file are unsigned.
const BitDepth = 8

// the number of ticks in each block written to disk
const blockLength = 65536

// the wav format tag for uncompressed PCM data
const pcmFormat = 1

// the sample values of a sync output
const (
	syncLow  = 0
	syncHigh = 255
)

// WavWriter implements the signal.Sink interface.
type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buffer   *audio.IntBuffer

	// number of ticks written
	Ticks int
}

// New is the preferred method of initialisation for the WavWriter type. The
// sample rate should be the frequency of the master clock.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "sample rate must be positive")
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf("wavwriter: %v", err)
	}

	aw := &WavWriter{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, sampleRate, BitDepth, NumChannels, pcmFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: NumChannels,
				SampleRate:  sampleRate,
			},
			Data:           make([]int, 0, blockLength*NumChannels),
			SourceBitDepth: BitDepth,
		},
	}

	logger.Logf(logger.Allow, "wavwriter", "capturing signal to %s", filename)

	return aw, nil
}

func level(v bool) int {
	if v {
		return syncHigh
	}
	return syncLow
}

// Signal implements the signal.Sink interface.
func (aw *WavWriter) Signal(s signal.Sample) error {
	// the six bit level is scaled to the full range of the sample
	aw.buffer.Data = append(aw.buffer.Data, level(s.HSync), level(s.VSync), int(s.Level&palette.Mask)<<2)
	aw.Ticks++

	if len(aw.buffer.Data) >= cap(aw.buffer.Data) {
		return aw.flush()
	}

	return nil
}

func (aw *WavWriter) flush() error {
	if len(aw.buffer.Data) == 0 {
		return nil
	}
	if err := aw.enc.Write(aw.buffer); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	aw.buffer.Data = aw.buffer.Data[:0]
	return nil
}

// EndCapture writes any remaining samples and completes the file.
func (aw *WavWriter) EndCapture() (rerr error) {
	defer func() {
		err := aw.f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	if err := aw.flush(); err != nil {
		return err
	}

	if err := aw.enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "wrote %d ticks to %s", aw.Ticks, aw.filename)

	return nil
}
