package pcm

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// Analyzer turns the mono tap of the playback stream into spectrum frames.
// PCM is pushed into a fixed ring buffer as it is consumed by the output
// device; Spectrum windows the most recent samples, runs a real FFT and
// quantizes magnitudes into bytes.
type Analyzer struct {
	mu sync.Mutex

	fft    *fourier.FFT
	window []float64
	size   int

	ring []float64
	head int

	input  []float64
	coeffs []complex128
}

// NewAnalyzer creates an analyzer sized for the given frame resolution.
func NewAnalyzer(resolution int) *Analyzer {
	a := &Analyzer{}
	a.configure(resolution)
	return a
}

// configure sizes the FFT so the coefficient count (excluding DC) matches
// the requested bin count exactly. Caller holds the lock except during
// construction.
func (a *Analyzer) configure(resolution int) {
	size := resolution * 2
	a.size = size
	a.fft = fourier.NewFFT(size)
	a.window = hannWindow(size)
	a.ring = make([]float64, size)
	a.head = 0
	a.input = make([]float64, size)
	a.coeffs = make([]complex128, size/2+1)
}

// Push appends mono samples in the range [-1, 1] to the ring buffer.
func (a *Analyzer) Push(samples []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range samples {
		a.ring[a.head] = s
		a.head = (a.head + 1) % a.size
	}
}

// Reset clears the ring buffer, so the next frame after a stop or seek does
// not show stale audio.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.ring {
		a.ring[i] = 0
	}
	a.head = 0
}

// Spectrum computes the current frame at the given resolution.
func (a *Analyzer) Spectrum(resolution int) domain.SpectrumFrame {
	a.mu.Lock()
	defer a.mu.Unlock()

	if resolution < 1 {
		resolution = domain.DefaultResolution
	}
	if resolution*2 != a.size {
		a.configure(resolution)
	}

	frame := domain.NewSilentFrame(resolution)

	// Unroll the ring into chronological order, windowed.
	for i := 0; i < a.size; i++ {
		a.input[i] = a.ring[(a.head+i)%a.size] * a.window[i]
	}

	// Coefficients demands a destination of exactly size/2+1 (or nil);
	// configure allocates a.coeffs to that length.
	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	// Skip DC; normalize so a full-scale sine lands near 1.0 despite the
	// Hann window halving the coherent gain.
	norm := 4.0 / float64(a.size)
	for i := 0; i < resolution; i++ {
		mag := cmplx.Abs(a.coeffs[i+1]) * norm
		frame.FrequencyBins[i] = quantize(math.Sqrt(mag) * 1.4)
	}

	// Waveform: the newest samples, raw and centered on 128.
	offset := a.size - resolution
	for i := 0; i < resolution; i++ {
		s := a.ring[(a.head+offset+i)%a.size]
		frame.WaveformSamples[i] = quantizeSample(s)
	}

	return frame
}

// quantizeSample maps a [-1,1] sample to a byte centered on 128, so a
// silent stream reproduces the silent-frame encoding exactly.
func quantizeSample(s float64) byte {
	v := 128 + s*127
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// quantize maps [0,1] to a byte, clamping overshoot.
func quantize(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
