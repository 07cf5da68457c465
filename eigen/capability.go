package eigen

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sys/cpu"
)

// Capability describes what a backend can solve.
type Capability struct {
	Backend     string
	Symmetric   bool       // handles symmetric operators
	Generalized bool       // handles H x = λ M x, not only M = I
	Direct      bool       // computes the full spectrum without restarts
	Spectra     []Spectrum // supported orderings
	CPU         []string   // host SIMD features the backend's kernels can use
}

// Requirement is what a caller needs from a backend.
type Requirement struct {
	Symmetric   bool
	Generalized bool
	Spectrum    Spectrum
	CPU         []string // features that must appear in Capability.CPU, e.g. "avx2"
}

// CapabilityError reports a backend that lacks required features.
type CapabilityError struct {
	Backend string
	Missing []string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("eigen: backend %q lacks %s", e.Backend, strings.Join(e.Missing, ", "))
}

// HostFeatures lists the SIMD extensions detected on this machine,
// prefixed by the architecture, e.g. ["amd64", "sse2", "avx2"].
func HostFeatures() []string {
	feats := []string{runtime.GOARCH}
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"sse2", cpu.X86.HasSSE2},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				feats = append(feats, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
	}

	return feats
}

// Capabilities returns the capability record of a registered backend.
func Capabilities(name string) (Capability, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Capability{}, fmt.Errorf("%q: %w", name, ErrBackendUnavailable)
	}

	return e.caps, nil
}

// CheckCapabilities verifies that the backend satisfies req. A backend
// without CPU entries (pure Go) fails any CPU requirement. It returns
// ErrBackendUnavailable for an unknown name and *CapabilityError listing
// every missing feature otherwise.
func CheckCapabilities(name string, req Requirement) error {
	c, err := Capabilities(name)
	if err != nil {
		return err
	}
	var missing []string
	if req.Symmetric && !c.Symmetric {
		missing = append(missing, "symmetric")
	}
	if req.Generalized && !c.Generalized {
		missing = append(missing, "generalized")
	}
	if req.Spectrum != "" && !c.supports(req.Spectrum) {
		missing = append(missing, "spectrum "+string(req.Spectrum))
	}
	for _, f := range req.CPU {
		if !slices.Contains(c.CPU, f) {
			missing = append(missing, "cpu "+f)
		}
	}
	if len(missing) > 0 {
		return &CapabilityError{Backend: name, Missing: missing}
	}

	return nil
}

func (c Capability) supports(s Spectrum) bool {
	for _, have := range c.Spectra {
		if have == s {
			return true
		}
	}

	return false
}
