package frames

import (
	"image"
	"testing"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
)

// makeSequence builds n 4x4 frames where the red channel of every pixel
// carries the frame index, so output frames can be traced back to inputs.
func makeSequence(n int) Sequence {
	seq := make(Sequence, n)
	for i := 0; i < n; i++ {
		frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for p := 0; p < len(frame.Pix); p += 4 {
			frame.Pix[p] = uint8(i)
			frame.Pix[p+3] = 255
		}
		seq[i] = frame
	}
	return seq
}

// frameIndex reads back the index stamped by makeSequence.
func frameIndex(f *image.RGBA) int {
	return int(f.Pix[0])
}

func TestNormalizeTruncates(t *testing.T) {
	seq := makeSequence(10)

	// 10 frames, target 7 -> input frames [0..6]
	out, err := Normalize(seq, 7, 1)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if len(out) != 7 {
		t.Fatalf("len(out) = %d, want 7", len(out))
	}
	for i, f := range out {
		if frameIndex(f) != i {
			t.Errorf("out[%d] = frame %d, want frame %d", i, frameIndex(f), i)
		}
	}
}

func TestNormalizeLoops(t *testing.T) {
	seq := makeSequence(5)

	// 5 frames, target 12 -> [0,1,2,3,4,0,1,2,3,4,0,1]
	out, err := Normalize(seq, 12, 1)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	want := []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4, 0, 1}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i, f := range out {
		if frameIndex(f) != want[i] {
			t.Errorf("out[%d] = frame %d, want frame %d", i, frameIndex(f), want[i])
		}
	}
}

func TestNormalizeExactLength(t *testing.T) {
	seq := makeSequence(8)

	out, err := Normalize(seq, 1, 8)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if len(out) != 8 {
		t.Fatalf("len(out) = %d, want 8", len(out))
	}
}

func TestNormalizeCyclicProperty(t *testing.T) {
	// For n < m the output must satisfy out[i] == in[i mod n] for all i.
	for _, tc := range []struct{ n, m int }{{1, 9}, {3, 10}, {7, 15}, {5, 5}} {
		seq := makeSequence(tc.n)
		out, err := Normalize(seq, float64(tc.m), 1)
		if err != nil {
			t.Fatalf("Normalize(n=%d, m=%d) failed: %v", tc.n, tc.m, err)
		}
		if len(out) != tc.m {
			t.Fatalf("Normalize(n=%d, m=%d): len = %d, want %d", tc.n, tc.m, len(out), tc.m)
		}
		for i, f := range out {
			if frameIndex(f) != i%tc.n {
				t.Errorf("Normalize(n=%d, m=%d): out[%d] = frame %d, want frame %d",
					tc.n, tc.m, i, frameIndex(f), i%tc.n)
			}
		}
	}
}

func TestNormalizeFractionalTarget(t *testing.T) {
	seq := makeSequence(100)

	// floor(2.5s * 8fps) = 20 frames
	out, err := Normalize(seq, 2.5, 8)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if len(out) != 20 {
		t.Errorf("len(out) = %d, want 20", len(out))
	}
}

func TestNormalizeInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		seq      Sequence
		duration float64
		fps      int
		wantCode int
	}{
		{"empty sequence", Sequence{}, 10, 8, errors.ErrEmptyFrameSequence},
		{"nil sequence", nil, 10, 8, errors.ErrEmptyFrameSequence},
		{"zero duration", makeSequence(3), 0, 8, errors.ErrNonPositiveDuration},
		{"negative duration", makeSequence(3), -1, 8, errors.ErrNonPositiveDuration},
		{"zero fps", makeSequence(3), 10, 0, errors.ErrNonPositiveFPS},
		{"target rounds to zero", makeSequence(3), 0.05, 8, errors.ErrZeroTargetFrames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.seq, tt.duration, tt.fps)
			if err == nil {
				t.Fatal("Normalize() succeeded, want validation error")
			}
			se, ok := err.(*errors.StructuredError)
			if !ok {
				t.Fatalf("Normalize() returned %T, want *errors.StructuredError", err)
			}
			if se.Type != errors.ValidationError {
				t.Errorf("Type = %q, want %q", se.Type, errors.ValidationError)
			}
			if se.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", se.Code, tt.wantCode)
			}
		})
	}
}

func TestValidateMismatchedDimensions(t *testing.T) {
	seq := makeSequence(2)
	seq = append(seq, image.NewRGBA(image.Rect(0, 0, 8, 8)))

	err := seq.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded, want dimension error")
	}
	se, ok := err.(*errors.StructuredError)
	if !ok || se.Code != errors.ErrMismatchedFrameSize {
		t.Errorf("Validate() = %v, want code %d", err, errors.ErrMismatchedFrameSize)
	}
}

func TestInterpolatePreservesEndpoints(t *testing.T) {
	seq := makeSequence(2)
	// Frame 0 has red=0, frame 1 has red=1.
	out, err := Interpolate(seq, 5)
	if err != nil {
		t.Fatalf("Interpolate() failed: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("len(out) = %d, want 5", len(out))
	}
	if frameIndex(out[0]) != 0 {
		t.Errorf("first frame red = %d, want 0", frameIndex(out[0]))
	}
	if frameIndex(out[4]) != 1 {
		t.Errorf("last frame red = %d, want 1", frameIndex(out[4]))
	}
}

func TestInterpolateSingleFrame(t *testing.T) {
	seq := makeSequence(1)

	out, err := Interpolate(seq, 5)
	if err != nil {
		t.Fatalf("Interpolate() failed: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("len(out) = %d, want 5", len(out))
	}
	for i, f := range out {
		if frameIndex(f) != 0 {
			t.Errorf("out[%d] = frame %d, want frame 0", i, frameIndex(f))
		}
	}
}

func TestInterpolateBlendsLinearly(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 2, 2))
	b := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for p := 0; p < len(a.Pix); p += 4 {
		a.Pix[p] = 0
		b.Pix[p] = 200
	}

	out, err := Interpolate(Sequence{a, b}, 3)
	if err != nil {
		t.Fatalf("Interpolate() failed: %v", err)
	}
	// Middle frame sits halfway between the endpoints.
	if got := out[1].Pix[0]; got != 100 {
		t.Errorf("middle frame red = %d, want 100", got)
	}
}

func TestInterpolateTruncatesLongInput(t *testing.T) {
	seq := makeSequence(6)
	out, err := Interpolate(seq, 4)
	if err != nil {
		t.Fatalf("Interpolate() failed: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4", len(out))
	}
	for i, f := range out {
		if frameIndex(f) != i {
			t.Errorf("out[%d] = frame %d, want frame %d", i, frameIndex(f), i)
		}
	}
}

func TestSequenceDimensions(t *testing.T) {
	seq := makeSequence(3)
	if seq.Width() != 4 || seq.Height() != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", seq.Width(), seq.Height())
	}
	var empty Sequence
	if empty.Width() != 0 || empty.Height() != 0 {
		t.Error("empty sequence should report zero dimensions")
	}
}
