// Package baseimage resolves a runtime version constraint to a pinned,
// pullable base image reference.
package baseimage

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/kvant-lab/slimpack/internal/recipe"
)

var (
	ErrUnknownSeries     = errors.New("unknown base image series")
	ErrNoMatchingRelease = errors.New("no release satisfies the version constraint")
)

// Ref is a fully pinned base image reference.
type Ref struct {
	Series  string
	Release string
	Variant string
}

func (r Ref) String() string {
	if r.Variant == "" {
		return fmt.Sprintf("%s:%s", r.Series, r.Release)
	}
	return fmt.Sprintf("%s:%s-%s", r.Series, r.Release, r.Variant)
}

// DefaultVariant is used when neither recipe nor flags pick one.
const DefaultVariant = "slim"

// Variants lists the supported base image flavours, preferred first.
func Variants() []string {
	return []string{"slim", "bookworm", "alpine"}
}

// pythonReleases are the releases slimpack is willing to pin to, oldest
// first. Pinning to a known release keeps rebuilds reproducible instead of
// floating with whatever the registry calls "3.11" this week.
var pythonReleases = []string{
	"3.9.21",
	"3.10.16",
	"3.11.11",
	"3.12.8",
	"3.13.1",
}

// bare matches constraints like "3" or "3.11" with no operator. Those are
// treated as "that release line", not as an exact version.
var bare = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Resolve turns a runtime spec into a pinned Ref. The variant is taken as
// given; an unresolvable series or constraint is a build error.
func Resolve(rt recipe.Runtime) (Ref, error) {
	if rt.Series != "python" {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownSeries, rt.Series)
	}

	constraint := rt.Version
	if bare.MatchString(constraint) {
		constraint = "~" + constraint
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid version constraint %q: %w", rt.Version, err)
	}

	var best *semver.Version
	var bestRaw string
	for _, raw := range pythonReleases {
		v, err := semver.NewVersion(raw)
		if err != nil {
			return Ref{}, fmt.Errorf("bad release table entry %q: %w", raw, err)
		}
		if !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}
	if best == nil {
		return Ref{}, fmt.Errorf("%w: %q", ErrNoMatchingRelease, rt.Version)
	}

	return Ref{
		Series:  rt.Series,
		Release: bestRaw,
		Variant: rt.Variant,
	}, nil
}
