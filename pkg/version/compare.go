package version

import "github.com/Masterminds/semver/v3"

func (v Version) semver() *semver.Version {
	return semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), "", "")
}

// AtLeast returns true if v >= other.
func (v Version) AtLeast(other Version) bool {
	return v.semver().Compare(other.semver()) >= 0
}

// IsZero reports whether v was never set.
func (v Version) IsZero() bool {
	return v == Version{}
}
