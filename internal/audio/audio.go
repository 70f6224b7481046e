// Package audio turns the running field into an ambient pad. The synth
// listens to the session as an observer: the peak of psi opens the filter
// and the entity mode picks the chord.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// chords per entity mode, in Hz
var chords = map[dynamo.EntityMode][]float64{
	dynamo.Wave:          {98.00, 116.54, 146.83, 174.61, 220.00},
	dynamo.Particle:      {110.00, 138.59, 164.81, 207.65},
	dynamo.HiggsDecay:    {87.31, 103.83, 130.81, 155.56, 196.00},
	dynamo.PhotonTrail:   {130.81, 164.81, 196.00, 246.94},
	dynamo.EntangledPair: {73.42, 110.00, 146.83, 220.00},
}

type Synth struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	peak   float64
	mode   dynamo.EntityMode
	Volume float64

	smooth      float64
	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	Active bool
}

func NewSynth() *Synth {
	// 0.6 s delay
	delayLen := int(float64(SampleRate) * 0.6)
	return &Synth{
		Volume:    0.25,
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens the default output device in stereo.
func (a *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.stream = stream
	a.Active = true
	return nil
}

func (a *Synth) Stop() error {
	if !a.Active {
		return nil
	}
	a.Active = false
	a.stream.Stop()
	a.stream.Close()
	return portaudio.Terminate()
}

// OnStep records the peak of psi and the mode for the audio thread.
func (a *Synth) OnStep(fs *dynamo.FieldState, mode dynamo.EntityMode, tick int) {
	peak := fs.Psi.MaxAbs()
	if math.IsNaN(peak) || math.IsInf(peak, 0) {
		peak = 0
	}
	a.mu.Lock()
	a.peak = peak
	a.mode = mode
	a.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one pole low pass
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Cutoff maps a smoothed peak to the filter frequency, 300 Hz at rest up
// to 1200 Hz.
func Cutoff(peak float64) float64 {
	return 300.0 + math.Min(math.Abs(peak)*600.0, 900.0)
}

// Process fills one stereo buffer. It is the portaudio callback and is
// safe to call directly.
func (a *Synth) Process(out [][]float32) {
	a.mu.Lock()
	target, mode := a.peak, a.mode
	a.mu.Unlock()

	freqs, ok := chords[mode]
	if !ok {
		freqs = chords[dynamo.Wave]
	}

	dt := 1.0 / float64(SampleRate)
	g := 1.0 / float64(len(freqs))

	for i := range out[0] {
		a.smooth = a.smooth*0.9995 + target*0.0005
		cutoff := Cutoff(a.smooth)

		var sampleL, sampleR float64
		for j, f := range freqs {
			lfo := math.Sin(a.time*0.2 + float64(j))
			sampleL += triangle(a.time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(a.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		a.filterState[0] = lpf(sampleL, cutoff, dt, a.filterState[0])
		a.filterState[1] = lpf(sampleR, cutoff, dt, a.filterState[1])

		delayL := a.delayLine[0][a.delayHead]
		delayR := a.delayLine[1][a.delayHead]
		mixL := a.filterState[0] + delayL*0.3 + delayR*0.1
		mixR := a.filterState[1] + delayR*0.3 + delayL*0.1
		a.delayLine[0][a.delayHead] = mixL * 0.7
		a.delayLine[1][a.delayHead] = mixR * 0.7
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * a.Volume)
		out[1][i] = float32(mixR * a.Volume)

		a.time += dt
	}
}
