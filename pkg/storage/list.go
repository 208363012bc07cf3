package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// MaxListCap is the upper bound on a single listing page.
const MaxListCap int32 = 500

// BlobMeta describes a stored blob without its content.
type BlobMeta struct {
	Key           string    `json:"key"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	LastModified  time.Time `json:"last_modified"`
}

// ListResult is one page of a blob listing. A non-empty NextMarker
// indicates more results; pass it back as the marker to continue.
type ListResult struct {
	Items      []BlobMeta `json:"items"`
	NextMarker string     `json:"next_marker,omitempty"`
}

// ParseMaxResults parses an optional max_results query value, clamped
// to MaxListCap. Empty input returns the fallback. The clamp happens
// before any narrowing so values past the int32 range cannot wrap.
func ParseMaxResults(value string, fallback int32) (int32, error) {
	if value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxResults, value)
	}

	return int32(min(n, int(MaxListCap))), nil
}

// List returns one page of blobs under the given prefix.
func (a *azure) List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error) {
	opts := &azblob.ListBlobsFlatOptions{
		MaxResults: &maxResults,
	}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	if marker != "" {
		opts.Marker = &marker
	}

	pager := a.client.NewListBlobsFlatPager(a.container, opts)

	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	result := &ListResult{Items: make([]BlobMeta, 0, len(page.Segment.BlobItems))}
	for _, item := range page.Segment.BlobItems {
		result.Items = append(result.Items, blobMeta(item))
	}

	if page.NextMarker != nil {
		result.NextMarker = *page.NextMarker
	}

	return result, nil
}

// Find returns metadata for the blob at the given key without
// downloading its content. Returns ErrNotFound if the blob does not exist.
func (a *azure) Find(ctx context.Context, key string) (*BlobMeta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return nil, blobErr(err, "find", key)
	}

	meta := &BlobMeta{Key: key}
	if props.ContentType != nil {
		meta.ContentType = *props.ContentType
	}
	if props.ContentLength != nil {
		meta.ContentLength = *props.ContentLength
	}
	if props.LastModified != nil {
		meta.LastModified = *props.LastModified
	}

	return meta, nil
}

func blobMeta(item *container.BlobItem) BlobMeta {
	var meta BlobMeta

	if item.Name != nil {
		meta.Key = *item.Name
	}
	if item.Properties != nil {
		if item.Properties.ContentType != nil {
			meta.ContentType = *item.Properties.ContentType
		}
		if item.Properties.ContentLength != nil {
			meta.ContentLength = *item.Properties.ContentLength
		}
		if item.Properties.LastModified != nil {
			meta.LastModified = *item.Properties.LastModified
		}
	}

	return meta
}
