// Package main provides CMA-ES tuning of box material parameters.
package main

import (
	"math"

	"github.com/pthm-cable/boxfall/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "box_friction", Path: "boxes.friction", Min: 0.05, Max: 1.0, Default: 0.7},
			{Name: "box_density", Path: "boxes.density", Min: 0.2, Max: 5.0, Default: 1.0},
			{Name: "big_box_friction", Path: "big_box.friction", Min: 0.05, Max: 1.0, Default: 0.7},
			{Name: "big_box_density", Path: "big_box.density", Min: 1.0, Max: 30.0, Default: 10.0},
		},
	}
}

// clamp limits v to the spec's bounds.
func (s ParamSpec) clamp(v float64) float64 {
	return math.Min(math.Max(v, s.Min), s.Max)
}

// unit maps a raw value onto [0,1] over the spec's bounds.
func (s ParamSpec) unit(v float64) float64 {
	return (v - s.Min) / (s.Max - s.Min)
}

// raw maps a [0,1] value back onto the spec's bounds.
func (s ParamSpec) raw(u float64) float64 {
	return s.Min + u*(s.Max-s.Min)
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// each applies fn to every spec and its matching value.
func (pv *ParamVector) each(v []float64, fn func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = fn(spec, v[i])
	}
	return out
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(make([]float64, len(pv.Specs)), func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, ParamSpec.unit)
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	return pv.each(normalized, ParamSpec.raw)
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.each(v, ParamSpec.clamp)
}

// fields returns the config values in Specs order.
func fields(cfg *config.Config) []*float64 {
	return []*float64{
		&cfg.Boxes.Friction,
		&cfg.Boxes.Density,
		&cfg.BigBox.Friction,
		&cfg.BigBox.Density,
	}
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, f := range fields(cfg) {
		*f = pv.Specs[i].clamp(values[i])
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	fs := fields(cfg)
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = *f
	}
	return out
}
