package configloader

import "github.com/yaklabco/regionfold/pkg/config"

// Merge layers configs in order; each later config overrides the earlier
// ones field by field. Zero scalars and nil slices in a layer leave the
// value below them alone, while an empty non-nil slice clears it.
func Merge(layers ...*config.Config) *config.Config {
	var out *config.Config
	for _, layer := range layers {
		out = overlay(out, layer)
	}
	return out
}

func overlay(base, top *config.Config) *config.Config {
	switch {
	case base == nil:
		return top
	case top == nil:
		return base
	}

	out := base.Clone()
	setScalar(&out.Outliner, top.Outliner)
	setScalar(&out.InitialState, top.InitialState)
	setScalar(&out.Format, top.Format)
	setScalar(&out.Jobs, top.Jobs)
	setSlice(&out.Syntaxes, top.Syntaxes)
	setSlice(&out.Extensions, top.Extensions)
	setSlice(&out.Ignore, top.Ignore)
	setSlice(&out.CollapsedLines, top.CollapsedLines)
	return out
}

func setScalar[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func setSlice[S ~[]E, E any](dst *S, v S) {
	if v != nil {
		*dst = v
	}
}
