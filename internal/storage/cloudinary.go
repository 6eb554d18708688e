package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageHost is the third-party hosting boundary for profile images: upload
// returns a secure URL, destroy removes a previously uploaded asset.
type ImageHost interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type cloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryHost builds an ImageHost from a CLOUDINARY_URL style
// connection string.
func NewCloudinaryHost(cloudinaryURL string) (ImageHost, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &cloudinaryHost{cld: cld}, nil
}

func (h *cloudinaryHost) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	res, err := h.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func (h *cloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	_, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// PublicIDFromURL derives the hosted asset's public ID from its delivery URL.
// Delivery URLs look like
// https://res.cloudinary.com/<cloud>/image/upload/v123/users/abc.jpg; the
// public ID is the path after the version segment with the extension removed.
func PublicIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != "upload" || i+1 >= len(segments) {
			continue
		}
		rest := segments[i+1:]
		// Skip the version segment (v<digits>) when present.
		if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, path.Ext(id))
	}

	// Not a recognizable delivery URL; fall back to the last path segment.
	base := path.Base(u.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
