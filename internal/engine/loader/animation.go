package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/engine/animation"
	"github.com/Faultbox/glbview/internal/logger"
)

func (b *builder) clip(idx int, a *gltf.Animation) (*animation.Clip, error) {
	name := a.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", idx)
	}

	var tracks []*animation.Track
	for ci, ch := range a.Channels {
		if ch.Target.Node == nil {
			continue
		}
		path, ok := trackPath(ch.Target.Path)
		if !ok {
			logger.Debug("skipping unsupported animation channel",
				zap.String("clip", name), zap.Int("channel", ci), zap.String("path", fmt.Sprint(ch.Target.Path)))
			continue
		}
		if *ch.Target.Node < 0 || *ch.Target.Node >= len(b.nodes) {
			return nil, fmt.Errorf("channel %d: node index %d out of range", ci, *ch.Target.Node)
		}
		if ch.Sampler < 0 || ch.Sampler >= len(a.Samplers) {
			return nil, fmt.Errorf("channel %d: sampler index %d out of range", ci, ch.Sampler)
		}
		s := a.Samplers[ch.Sampler]

		track, err := b.track(s, path)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ci, err)
		}
		track.Target = b.nodes[*ch.Target.Node]
		tracks = append(tracks, track)
	}

	return animation.NewClip(name, tracks), nil
}

func trackPath(p gltf.TRSProperty) (animation.Path, bool) {
	switch p {
	case gltf.TRSTranslation:
		return animation.PathTranslation, true
	case gltf.TRSRotation:
		return animation.PathRotation, true
	case gltf.TRSScale:
		return animation.PathScale, true
	}
	return 0, false
}

func trackInterpolation(i gltf.Interpolation) animation.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return animation.InterpolationStep
	case gltf.InterpolationCubicSpline:
		return animation.InterpolationCubicSpline
	}
	return animation.InterpolationLinear
}

func (b *builder) track(s *gltf.AnimationSampler, path animation.Path) (*animation.Track, error) {
	in, err := b.accessor(s.Input)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(b.doc, in, nil)
	if err != nil {
		return nil, fmt.Errorf("read keyframe times: %w", err)
	}
	times, ok := raw.([]float32)
	if !ok {
		return nil, fmt.Errorf("keyframe times have type %T, want float", raw)
	}

	out, err := b.accessor(s.Output)
	if err != nil {
		return nil, err
	}
	raw, err = modeler.ReadAccessor(b.doc, out, nil)
	if err != nil {
		return nil, fmt.Errorf("read keyframe values: %w", err)
	}
	values, err := flatten(raw)
	if err != nil {
		return nil, err
	}

	interp := trackInterpolation(s.Interpolation)
	want := len(times) * path.Width()
	if interp == animation.InterpolationCubicSpline {
		want *= 3
	}
	if len(values) != want {
		return nil, fmt.Errorf("%s track has %d values for %d keys", path, len(values), len(times))
	}

	return &animation.Track{
		Path:          path,
		Interpolation: interp,
		Times:         times,
		Values:        values,
	}, nil
}

// flatten turns accessor output into float32s, normalising integer rotations.
func flatten(raw any) ([]float32, error) {
	switch v := raw.(type) {
	case [][3]float32:
		out := make([]float32, 0, len(v)*3)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]float32:
		out := make([]float32, 0, len(v)*4)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]int8:
		return normalized(v, func(c int8) float32 { return max(float32(c)/127, -1) }), nil
	case [][4]uint8:
		return normalized(v, func(c uint8) float32 { return float32(c) / 255 }), nil
	case [][4]int16:
		return normalized(v, func(c int16) float32 { return max(float32(c)/32767, -1) }), nil
	case [][4]uint16:
		return normalized(v, func(c uint16) float32 { return float32(c) / 65535 }), nil
	}
	return nil, fmt.Errorf("unsupported keyframe value type %T", raw)
}

func normalized[T int8 | uint8 | int16 | uint16](v [][4]T, conv func(T) float32) []float32 {
	out := make([]float32, 0, len(v)*4)
	for _, e := range v {
		for _, c := range e {
			out = append(out, conv(c))
		}
	}
	return out
}
