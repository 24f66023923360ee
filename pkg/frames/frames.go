package frames

import (
	"fmt"
	"image"

	"github.com/owlcode-mcp/text-to-video/pkg/errors"
)

// Sequence is an ordered list of decoded video frames. All frames in a
// sequence share the same dimensions. Frames are never mutated after the
// sequence is built, so operations may share the underlying images.
type Sequence []*image.RGBA

// Width returns the frame width, or 0 for an empty sequence.
func (s Sequence) Width() int {
	if len(s) == 0 {
		return 0
	}
	return s[0].Bounds().Dx()
}

// Height returns the frame height, or 0 for an empty sequence.
func (s Sequence) Height() int {
	if len(s) == 0 {
		return 0
	}
	return s[0].Bounds().Dy()
}

// Validate checks that the sequence is non-empty and that every frame has
// the same dimensions as the first one.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrEmptyFrameSequence), "", errors.ErrEmptyFrameSequence)
	}
	first := s[0].Bounds()
	for i, frame := range s {
		if frame.Bounds().Dx() != first.Dx() || frame.Bounds().Dy() != first.Dy() {
			return errors.New(errors.ValidationError,
				errors.GetErrorMessage(errors.ErrMismatchedFrameSize),
				fmt.Sprintf("frame %d is %dx%d, first frame is %dx%d",
					i, frame.Bounds().Dx(), frame.Bounds().Dy(), first.Dx(), first.Dy()),
				errors.ErrMismatchedFrameSize)
		}
	}
	return nil
}

// Normalize returns a sequence of exactly floor(durationSeconds*fps) frames.
// When the input is long enough the head of the sequence is returned
// unchanged; otherwise the whole input is cyclically repeated end-to-end and
// then truncated. Loop boundaries are hard cuts, no blending is applied.
func Normalize(seq Sequence, durationSeconds float64, fps int) (Sequence, error) {
	if len(seq) == 0 {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrEmptyFrameSequence), "", errors.ErrEmptyFrameSequence)
	}
	if durationSeconds <= 0 {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrNonPositiveDuration),
			fmt.Sprintf("duration: %g", durationSeconds), errors.ErrNonPositiveDuration)
	}
	if fps <= 0 {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrNonPositiveFPS),
			fmt.Sprintf("fps: %d", fps), errors.ErrNonPositiveFPS)
	}

	target := int(durationSeconds * float64(fps))
	if target < 1 {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrZeroTargetFrames),
			fmt.Sprintf("duration %gs at %d fps", durationSeconds, fps), errors.ErrZeroTargetFrames)
	}

	if len(seq) >= target {
		return seq[:target], nil
	}

	loops := (target + len(seq) - 1) / len(seq)
	extended := make(Sequence, 0, loops*len(seq))
	for i := 0; i < loops; i++ {
		extended = append(extended, seq...)
	}
	return extended[:target], nil
}

// Interpolate stretches a short sequence to targetCount frames using linear
// per-pixel-channel interpolation between neighbouring source frames. It is
// an alternative to the looping strategy of Normalize and is not used by the
// default flow. Inputs at least targetCount long are truncated instead.
func Interpolate(seq Sequence, targetCount int) (Sequence, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if targetCount < 1 {
		return nil, errors.New(errors.ValidationError,
			errors.GetErrorMessage(errors.ErrZeroTargetFrames),
			fmt.Sprintf("target count: %d", targetCount), errors.ErrZeroTargetFrames)
	}

	n := len(seq)
	if n >= targetCount {
		return seq[:targetCount], nil
	}

	// A single frame has no neighbour to blend with; replicate it. Frames
	// are immutable once the sequence is built, so sharing is safe.
	if n == 1 {
		out := make(Sequence, targetCount)
		for i := range out {
			out[i] = seq[0]
		}
		return out, nil
	}

	out := make(Sequence, targetCount)
	bounds := seq[0].Bounds()
	scale := float64(n-1) / float64(targetCount-1)

	for i := 0; i < targetCount; i++ {
		pos := float64(i) * scale
		lo := int(pos)
		if lo >= n-1 {
			lo = n - 2
		}
		frac := pos - float64(lo)
		out[i] = blendFrames(seq[lo], seq[lo+1], frac, bounds)
	}
	return out, nil
}

// blendFrames linearly mixes two frames: (1-frac)*a + frac*b per channel.
func blendFrames(a, b *image.RGBA, frac float64, bounds image.Rectangle) *image.RGBA {
	mixed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			ai := a.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			bi := b.PixOffset(b.Bounds().Min.X+x, b.Bounds().Min.Y+y)
			mi := mixed.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				av := float64(a.Pix[ai+c])
				bv := float64(b.Pix[bi+c])
				mixed.Pix[mi+c] = uint8((1-frac)*av + frac*bv + 0.5)
			}
		}
	}
	return mixed
}
