package dockerfile

import (
	"strings"

	"github.com/distribution/reference"
	"github.com/opencontainers/go-digest"
)

// ParseImage splits an image reference into name, tag and digest.
//
// References the distribution grammar rejects (build-arg variables,
// upper-case names) are split by hand on the last '@' and the last ':'
// after the final '/'.
func ParseImage(ref string) BaseImage {
	if !strings.Contains(ref, "$") {
		if parsed, err := reference.Parse(ref); err == nil {
			var img BaseImage
			if named, ok := parsed.(reference.Named); ok {
				img.Name = named.Name()
			}
			if tagged, ok := parsed.(reference.Tagged); ok {
				img.Tag = tagged.Tag()
			}
			if digested, ok := parsed.(reference.Digested); ok {
				img.Digest = digested.Digest().String()
			}
			if img.Name != "" {
				return img
			}
		}
	}

	var img BaseImage
	name := ref
	if at := strings.LastIndex(name, "@"); at >= 0 {
		img.Digest = name[at+1:]
		name = name[:at]
	}
	if colon := strings.LastIndex(name, ":"); colon > strings.LastIndex(name, "/") {
		img.Tag = name[colon+1:]
		name = name[:colon]
	}
	img.Name = name
	return img
}

// HasDigest reports whether the reference is pinned by a well-formed digest.
func (b BaseImage) HasDigest() bool {
	if b.Digest == "" {
		return false
	}
	return digest.Digest(b.Digest).Validate() == nil
}

// IsScratch reports whether the image is the empty "scratch" base.
func (b BaseImage) IsScratch() bool {
	return strings.EqualFold(b.Name, "scratch")
}

// IsVariable reports whether the reference depends on a build argument.
func (b BaseImage) IsVariable() bool {
	return strings.Contains(b.Name, "$")
}
