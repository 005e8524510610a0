// Package storage uploads media files to remote blob storage providers.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Provider names.
const (
	ProviderCloudinary = "cloudinary"
	ProviderGDrive     = "gdrive"
	ProviderS3         = "s3"
)

// ErrUnknownProvider is returned when no uploader is registered under a name.
var ErrUnknownProvider = errors.New("unknown storage provider")

// Object is a file to upload.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	// Folder groups uploads on providers that support it, e.g. "news/12".
	Folder string
}

// Stored describes an uploaded object.
type Stored struct {
	// ExternalID is what Delete needs to remove the object again.
	ExternalID string
	URL        string
}

// Uploader stores and removes objects with one provider.
type Uploader interface {
	Provider() string
	Upload(ctx context.Context, obj Object) (*Stored, error)
	Delete(ctx context.Context, externalID string) error
}

// Registry holds the configured uploaders and the default one for new files.
// Existing media are deleted through the provider recorded on them, so a
// provider switch does not orphan old files.
type Registry struct {
	uploaders map[string]Uploader
	def       string
}

// NewRegistry builds a registry; def names the provider used for uploads.
func NewRegistry(def string, uploaders ...Uploader) (*Registry, error) {
	r := &Registry{uploaders: make(map[string]Uploader, len(uploaders)), def: def}
	for _, u := range uploaders {
		r.uploaders[u.Provider()] = u
	}
	if _, ok := r.uploaders[def]; !ok {
		return nil, fmt.Errorf("%w: default %q is not configured", ErrUnknownProvider, def)
	}
	return r, nil
}

// Default returns the uploader for new files.
func (r *Registry) Default() Uploader {
	return r.uploaders[r.def]
}

// Get returns the uploader registered under provider.
func (r *Registry) Get(provider string) (Uploader, error) {
	u, ok := r.uploaders[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return u, nil
}

// Providers lists the registered provider names.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.uploaders))
	for name := range r.uploaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
