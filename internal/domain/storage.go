package domain

import "context"

// ObjectStorage stores public files such as avatars and returns their URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
