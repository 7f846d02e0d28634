package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxAvatarSize is the largest avatar upload accepted, before compression.
const MaxAvatarSize = 5 << 20

type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

type imageFormat struct {
	mime       string
	signatures [][]byte
}

var (
	jpegFormat = imageFormat{"image/jpeg", [][]byte{{0xFF, 0xD8, 0xFF}}}

	// Accepted avatar formats by extension. application/octet-stream never passes.
	imageFormats = map[string]imageFormat{
		".jpg":  jpegFormat,
		".jpeg": jpegFormat,
		".png":  {"image/png", [][]byte{{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}}},
		".gif":  {"image/gif", [][]byte{[]byte("GIF87a"), []byte("GIF89a")}},
		".webp": {"image/webp", [][]byte{[]byte("RIFF")}},
	}
)

// ValidateFileExtension is the cheap pre-check run before the body is read.
func ValidateFileExtension(filename string) error {
	_, err := formatFor(filename)
	return err
}

func formatFor(filename string) (imageFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return imageFormat{}, errors.New("file has no extension")
	}
	format, ok := imageFormats[ext]
	if !ok {
		return imageFormat{}, errors.New("file extension not allowed: " + ext)
	}
	return format, nil
}

// ValidateImage checks the extension, that the magic bytes match it, and the
// sniffed MIME type. Sniffed and declared types must agree.
func ValidateImage(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{
		Extension:    strings.ToLower(filepath.Ext(filename)),
		DetectedMIME: http.DetectContentType(data),
	}

	format, err := formatFor(filename)
	switch {
	case err != nil:
		result.Error = err.Error()
	case len(data) == 0:
		result.Error = "file is empty"
	case len(data) > MaxAvatarSize:
		result.Error = "file exceeds the 5MB limit"
	case !hasSignature(data, format.signatures):
		result.Error = "file content does not match extension"
	case result.DetectedMIME != format.mime:
		result.Error = "MIME type not allowed: " + result.DetectedMIME
	default:
		result.Valid = true
	}
	return result
}

func hasSignature(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
