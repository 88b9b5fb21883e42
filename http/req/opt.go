package req

import (
	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/typed/logger"
)

// A ResolverOptFn is a functional option configuring a Resolver when constructing a new one.
type ResolverOptFn func(*Resolver)

// WithBodyDecoder replaces the decoding a Resolver does with d.
// The value d returns is validated against a Target as is.
//
// Use [NewDefaultDecoder] in d to fall back to the default decoding.
func WithBodyDecoder(d BodyDecoder) ResolverOptFn {
	return func(r *Resolver) {
		r.hook = d
	}
}

// WithFormTag sets the struct tag naming the field a form value decodes into.
// The default is "json", so one struct serves both JSON and form bodies.
func WithFormTag(tag string) ResolverOptFn {
	return func(r *Resolver) {
		if tag != "" {
			r.formTag = tag
		}
	}
}

// WithLogger sets the logger.Logger a Resolver writes debug logs to.
func WithLogger(l logger.Logger) ResolverOptFn {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithMaxMemory sets how many bytes of a multipart body the default decoding holds in memory.
func WithMaxMemory(n int64) ResolverOptFn {
	return func(r *Resolver) {
		if n > 0 {
			r.maxMemory = n
		}
	}
}

// WithValidator replaces the validator checking "validate" struct tags.
// Start from [NewValidator] to keep its field naming and rules.
func WithValidator(v *v10.Validate) ResolverOptFn {
	return func(r *Resolver) {
		if v != nil {
			r.valid = v
		}
	}
}
