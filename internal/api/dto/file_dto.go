package dto

// UploadResponse describes a freshly stored file.
type UploadResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"fileName"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}
