// Package images turns restaurant image references into delivery URLs.
package images

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

type Size struct {
	Width  int
	Height int
}

var (
	Card  = Size{Width: 600, Height: 400}
	Hero  = Size{Width: 1600, Height: 600}
	Thumb = Size{Width: 240, Height: 160}
)

// Resolver passes plain URLs through untouched. When Cloudinary is configured,
// Cloudinary public IDs and Cloudinary delivery URLs are re-issued with a
// fill-crop transformation for the requested size.
type Resolver struct {
	cld *cloudinary.Cloudinary
}

// New returns a pass-through resolver when cloudinaryURL is empty.
func New(cloudinaryURL string) (*Resolver, error) {
	if cloudinaryURL == "" {
		return &Resolver{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Resolver{cld: cld}, nil
}

func (r *Resolver) URL(ref string, size Size) string {
	if r == nil || r.cld == nil || ref == "" {
		return ref
	}

	publicID := ref
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		id, ok := publicIDFromURL(ref)
		if !ok {
			return ref
		}
		publicID = id
	}

	img, err := r.cld.Image(publicID)
	if err != nil {
		return ref
	}
	img.Transformation = fmt.Sprintf("c_fill,w_%d,h_%d,q_auto,f_auto", size.Width, size.Height)

	out, err := img.String()
	if err != nil {
		return ref
	}
	return out
}

// publicIDFromURL extracts the public ID from a res.cloudinary.com delivery URL,
// dropping any transformation and version segments.
func publicIDFromURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(parsed.Host, "cloudinary.com") {
		return "", false
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, part := range parts {
		if part != "upload" {
			continue
		}
		rest := parts[i+1:]
		for len(rest) > 1 && (isVersion(rest[0]) || isTransformation(rest[0])) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return "", false
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
			id = id[:dot]
		}
		return id, true
	}
	return "", false
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, c := range seg[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isTransformation(seg string) bool {
	for _, p := range strings.Split(seg, ",") {
		if len(p) < 3 || p[1] != '_' {
			return false
		}
	}
	return true
}
