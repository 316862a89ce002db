package helpers

import (
	"github.com/h2non/filetype"
	"log"
	"mime"
	"regexp"
	"sync"
)

const UNKNOWN_CONTENT_TYPE = "application/octet-stream"

var FileExtensionExtractor = regexp.MustCompile("(\\.[^\\./]+)$")
var once sync.Once

/**
works out a MIME type for the file at the given path. content sniffing is tried first and the file extension is
used as a fallback, so that text formats (which filetype can't recognise) still get a sensible answer.
*/
func ContentTypeForPath(filepath string) string {
	once.Do(func() {
		mime.AddExtensionType(".vcd", "text/x-vcd")
		mime.AddExtensionType(".fsdb", "application/x-fsdb")
		mime.AddExtensionType(".log", "text/plain")
	})

	fileTypeInfo, ftErr := filetype.MatchFile(filepath)
	if ftErr == nil && fileTypeInfo.MIME.Value != "" {
		return fileTypeInfo.MIME.Value
	}
	if ftErr != nil {
		log.Printf("DEBUG: Could not sniff content type for %s: %s", filepath, ftErr)
	}

	matches := FileExtensionExtractor.FindStringSubmatch(filepath)
	if matches == nil {
		return UNKNOWN_CONTENT_TYPE
	}
	mimeType := mime.TypeByExtension(matches[1])
	if mimeType == "" {
		return UNKNOWN_CONTENT_TYPE
	}
	return mimeType
}
