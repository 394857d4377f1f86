package upload

import (
	"mime"
	"path/filepath"
	"strings"
)

// allowedExtensions maps each accepted file extension to itself; see
// storedExtension for why the map also drives the stored name.
var allowedExtensions = map[string]string{
	".mp3": ".mp3",
	".mp4": ".mp4",
	".mov": ".mov",
}

// allowedMIMETypes maps each accepted media type to the extension a file of
// that type is stored under.
var allowedMIMETypes = map[string]string{
	"audio/mpeg":      ".mp3",
	"audio/mp3":       ".mp3",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

// Allowed reports whether an upload passes the type filter. Either the
// client file name must end in an accepted extension or the declared media
// type must be accepted; one is enough.
func Allowed(originalName, mimeType string) bool {
	_, extOK := allowedExtensions[extension(originalName)]
	_, mimeOK := allowedMIMETypes[mediaType(mimeType)]
	return extOK || mimeOK
}

// storedExtension picks the extension for the generated file name: the
// client's own extension when it is on the allow-list, otherwise the one
// implied by the accepted media type. A file admitted only by its media
// type therefore never lands on disk as ".html" or ".exe".
func storedExtension(originalName, mimeType string) string {
	if ext, ok := allowedExtensions[extension(originalName)]; ok {
		return ext
	}
	return allowedMIMETypes[mediaType(mimeType)]
}

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// mediaType strips parameters ("; charset=...") and normalises case.
func mediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}
