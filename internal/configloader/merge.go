package configloader

import (
	"maps"

	"github.com/yaklabco/gomask/pkg/config"
)

// MergeAll folds configs left to right. Non-empty scalars in a later config
// win; tokens and fields are merged by name, and a later entry replaces the
// earlier entry with the same name as a whole. Nil configs are skipped. The
// result shares no maps with the inputs.
func MergeAll(configs ...*config.Config) *config.Config {
	var merged *config.Config
	for _, next := range configs {
		switch {
		case next == nil:
		case merged == nil:
			merged = next.Clone()
		default:
			merged = overlay(merged, next)
		}
	}
	return merged
}

func overlay(base, top *config.Config) *config.Config {
	out := *base
	if top.Format != "" {
		out.Format = top.Format
	}
	if top.Color != "" {
		out.Color = top.Color
	}
	out.Tokens = union(base.Tokens, top.Tokens)
	out.Fields = union(base.Fields, top.Fields)
	return &out
}

// union returns a fresh map holding a's entries overlaid with b's.
func union[V any](a, b map[string]V) map[string]V {
	if a == nil && b == nil {
		return nil
	}
	out := make(map[string]V, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
