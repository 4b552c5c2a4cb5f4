package hadolint

import (
	"path"
	"regexp"
	"strings"
)

var windowsDriveRegex = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// isAbsolutePath reports whether a WORKDIR or COPY destination is absolute.
// Quoted paths, variables and Windows drive paths count as absolute.
func isAbsolutePath(p string) bool {
	p = strings.Trim(strings.TrimSpace(p), `"'`)
	switch {
	case p == "":
		return false
	case strings.HasPrefix(p, "/"), strings.HasPrefix(p, `\`), strings.HasPrefix(p, "$"):
		return true
	}
	return windowsDriveRegex.MatchString(p)
}

var archiveExtensions = []string{
	".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tbz", ".tbz2", ".tar.xz", ".txz",
	".tar.zst", ".tar.lz", ".tar.lzma", ".tlz", ".gz", ".bz2", ".xz", ".lz", ".lzma", ".zst", ".Z",
}

// isArchive reports whether name has an archive extension ADD can unpack.
func isArchive(name string) bool {
	base := path.Base(strings.Trim(name, `"'`))
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return true
		}
	}
	return false
}

// isURL reports whether an ADD source is fetched over the network.
func isURL(src string) bool {
	for _, scheme := range []string{"http://", "https://", "git@", "git://"} {
		if strings.HasPrefix(src, scheme) {
			return true
		}
	}
	return false
}
