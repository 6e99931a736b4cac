// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/saver/internal/cache"
)

//go:embed wgsl/*.wgsl
var sources embed.FS

// Entry point names used by every screensaver shader.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

var (
	// ErrMissingFragment is returned when a fragment source does not
	// declare the fs_main entry point.
	ErrMissingFragment = errors.New("shader: missing @fragment fn fs_main")

	// ErrVertexRedefined is returned when a fragment source declares its own
	// vs_main. The vertex stage is shared and cannot be replaced.
	ErrVertexRedefined = errors.New("shader: fragment source must not define vs_main")
)

var (
	fragmentEntryRe = regexp.MustCompile(`@fragment\s+fn\s+fs_main\s*\(`)
	vertexEntryRe   = regexp.MustCompile(`fn\s+vs_main\s*\(`)
)

// builtins maps effect names to the embedded files that make up their
// fragment stage, in concatenation order.
var builtins = map[string][]string{
	"blank":        {"blank.wgsl"},
	"matrix":       {"matrix.wgsl"},
	"starfield":    {"starfield.wgsl"},
	"plasmula":     {"plasma.wgsl"},
	"plasmula-alt": {"plasma.wgsl"},
}

func mustRead(name string) string {
	b, err := sources.ReadFile("wgsl/" + name)
	if err != nil {
		panic(fmt.Sprintf("shader: embedded source %s: %v", name, err))
	}
	return string(b)
}

// Common returns the shared vertex stage, uniform block and helper functions.
func Common() string {
	return mustRead("common.wgsl")
}

// Builtin returns the fragment source of a built-in effect.
func Builtin(name string) (string, bool) {
	files, ok := builtins[name]
	if !ok {
		return "", false
	}
	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = mustRead(f)
	}
	return strings.Join(parts, "\n"), true
}

// Build prefixes a fragment source with the common vertex stage.
func Build(fragment string) string {
	return Common() + "\n" + fragment
}

// CheckFragment performs the structural checks that Compile runs before
// invoking the compiler.
func CheckFragment(fragment string) error {
	if !fragmentEntryRe.MatchString(fragment) {
		return ErrMissingFragment
	}
	if vertexEntryRe.MatchString(fragment) {
		return ErrVertexRedefined
	}
	return nil
}

// Module is a compiled screensaver shader.
type Module struct {
	// Label names the module in GPU debug tools.
	Label string

	// WGSL is the complete source: common vertex stage plus fragment.
	WGSL string

	// SPIRV is the compiled code as little-endian 32-bit words.
	SPIRV []uint32
}

// Compile joins fragment with the common vertex stage and compiles the
// result to SPIR-V.
func Compile(label, fragment string) (*Module, error) {
	if err := CheckFragment(fragment); err != nil {
		return nil, fmt.Errorf("shader: %s: %w", label, err)
	}

	src := Build(fragment)
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s: %w", label, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return &Module{Label: label, WGSL: src, SPIRV: words}, nil
}

type moduleKey struct {
	label, fragment string
}

// compiled holds recently compiled modules. Hosts compile the same fragment
// once per output, and custom effects often reuse a built-in fragment.
var compiled = cache.New[moduleKey, *Module](32)

// CompileCached is Compile with a process-wide cache of successful results.
// The returned module is shared and must not be modified.
func CompileCached(label, fragment string) (*Module, error) {
	return compiled.GetOrCreate(moduleKey{label, fragment}, func() (*Module, error) {
		return Compile(label, fragment)
	})
}

// CacheStats reports hits and misses of CompileCached.
func CacheStats() (hits, misses uint64) {
	s := compiled.Stats()
	return s.Hits, s.Misses
}

// Descriptor returns a shader module descriptor carrying the SPIR-V code.
func (m *Module) Descriptor() gputypes.ShaderModuleDescriptor {
	return gputypes.ShaderModuleDescriptor{
		Label:  m.Label,
		Source: gputypes.ShaderSourceSPIRV{Code: m.SPIRV},
	}
}

// WGSLDescriptor returns a shader module descriptor carrying the WGSL
// source, for devices that compile WGSL themselves.
func (m *Module) WGSLDescriptor() gputypes.ShaderModuleDescriptor {
	return gputypes.ShaderModuleDescriptor{
		Label:  m.Label,
		Source: gputypes.ShaderSourceWGSL{Code: m.WGSL},
	}
}
