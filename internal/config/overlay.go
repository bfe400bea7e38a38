// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// Overlay is the set of session fields that can be overridden from the
// command line or the environment. Pointer fields distinguish "not given"
// from an explicit false.
type Overlay struct {
	// Server is a bare host name. It is only ever supplied by flags or the
	// environment; the config file's legacy server URL is resolved by the
	// endpoint resolver instead.
	Server   string
	User     string
	Password string

	Debug     *bool
	BatchMode *bool
	LoginV3   *bool
}

type overlayBuilder struct {
	layers []*Overlay
	err    error
}

// ResolveOverlay applies flag > environment > config file > default
// precedence per field and returns the winning values. Debug, BatchMode and
// LoginV3 are always non-nil in the result.
func ResolveOverlay(flags *Overlay, e Env, s *Settings) (*Overlay, error) {
	return newOverlayBuilder().
		withFlags(flags).
		withEnv(e).
		withSettings(s).
		withDefaults().
		build()
}

func newOverlayBuilder() *overlayBuilder {
	return &overlayBuilder{
		layers: make([]*Overlay, 0, 4),
	}
}

// build merges layers in insertion order. mergo never overwrites a field
// that an earlier layer already set, so the first layer wins.
func (b *overlayBuilder) build() (*Overlay, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building overlay: %w", b.err)
	}

	result := new(Overlay)
	for _, layer := range b.layers {
		// WithoutDereference keeps an explicit false from being replaced.
		if err := mergo.Merge(result, layer, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("error merging overlay: %w", err)
		}
	}

	return result, nil
}

func (b *overlayBuilder) withFlags(flags *Overlay) *overlayBuilder {
	if flags == nil {
		return b
	}

	copied := *flags
	copied.User = strings.ToLower(copied.User)
	b.layers = append(b.layers, &copied)
	return b
}

func (b *overlayBuilder) withEnv(e Env) *overlayBuilder {
	layer := &Overlay{
		Server:    e.Server,
		User:      strings.ToLower(e.User),
		Password:  e.Password,
		Debug:     e.Debug,
		BatchMode: e.BatchMode,
	}
	if v, ok := ParseBoolLike(e.LoginV3); ok {
		layer.LoginV3 = &v
	}

	b.layers = append(b.layers, layer)
	return b
}

func (b *overlayBuilder) withSettings(s *Settings) *overlayBuilder {
	if s == nil {
		b.err = errors.Join(b.err, errors.New("settings are nil"))
		return b
	}

	b.layers = append(b.layers, &Overlay{
		User:      s.User,
		Password:  s.Password,
		Debug:     ptr(s.Debug),
		BatchMode: ptr(s.BatchMode),
		LoginV3:   ptr(s.LoginV3),
	})
	return b
}

func (b *overlayBuilder) withDefaults() *overlayBuilder {
	b.layers = append(b.layers, &Overlay{
		Debug:     ptr(false),
		BatchMode: ptr(false),
		LoginV3:   ptr(true),
	})
	return b
}

// ParseBoolLike interprets the --login-v3 style values: any non-empty prefix
// of "TRUE" (case-insensitive) is true, every other non-empty value is
// false. ok is false for the empty string.
func ParseBoolLike(s string) (value, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, false
	}

	return strings.HasPrefix("TRUE", strings.ToUpper(s)), true
}

func ptr[T any](v T) *T {
	return &v
}
