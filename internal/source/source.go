// Package source builds the ordered list of download locations for one
// artifact: the canonical release host first, then a version-independent
// mirror.
package source

import (
	"fmt"
	"strings"
)

// Kind distinguishes the canonical release host from the mirror route.
type Kind string

const (
	KindPrimary Kind = "primary"
	KindMirror  Kind = "mirror"
)

// Candidate is one download location. Candidates are constructed fresh per
// run and never cached.
type Candidate struct {
	URL  string
	Kind Kind
}

// Mirror schemes. Both address the artifact by a moving branch reference
// instead of a release tag, so they remain usable when the latest tag could
// not be resolved.
const (
	MirrorSchemeRaw = "raw"
	MirrorSchemeCDN = "cdn"
)

// Builder constructs candidate URLs for a repository's artifacts.
type Builder struct {
	DownloadBase string // e.g. https://github.com
	Repo         string // owner/name
	MirrorScheme string // raw or cdn
	MirrorBase   string // overrides the scheme host entirely when set
	MirrorRef    string // branch reference, e.g. main
	MirrorPath   string // path within the repo, e.g. dist
}

// Candidates returns the download locations for artifact in priority order.
// The primary (tag-addressed) candidate is omitted entirely when tag is
// empty, i.e. when version resolution failed; the mirror never depends on
// the tag.
func (b Builder) Candidates(artifact, tag string) []Candidate {
	var out []Candidate
	if tag != "" {
		out = append(out, Candidate{
			URL:  fmt.Sprintf("%s/%s/releases/download/%s/%s", strings.TrimRight(b.DownloadBase, "/"), b.Repo, tag, artifact),
			Kind: KindPrimary,
		})
	}
	out = append(out, Candidate{URL: b.mirrorURL(artifact), Kind: KindMirror})
	return out
}

func (b Builder) mirrorURL(artifact string) string {
	path := strings.Trim(b.MirrorPath, "/")
	if b.MirrorBase != "" {
		return fmt.Sprintf("%s/%s/%s/%s", strings.TrimRight(b.MirrorBase, "/"), b.MirrorRef, path, artifact)
	}
	switch b.MirrorScheme {
	case MirrorSchemeCDN:
		return fmt.Sprintf("https://cdn.jsdelivr.net/gh/%s@%s/%s/%s", b.Repo, b.MirrorRef, path, artifact)
	default:
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", b.Repo, b.MirrorRef, path, artifact)
	}
}
