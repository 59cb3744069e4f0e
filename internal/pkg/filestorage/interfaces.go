package filestorage

import "mime/multipart"

// FileStorage stores uploaded profile pictures and hands back a stable
// reference string. The identity core never inspects file bytes; it
// persists the returned reference verbatim.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its reference string.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing
	// file is not an error.
	DeleteFile(ref string) error
}
