package dto

// MediaUploadDTO 上传内容，ContentType 已在 handler 中确定
type MediaUploadDTO struct {
	Data        []byte
	FileName    string
	ContentType string
	Folder      string
}

// MediaDTO 上传结果
type MediaDTO struct {
	FileID       string `json:"file_id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	FileType     string `json:"file_type"`
	Size         int64  `json:"size"`
	Width        *int   `json:"width,omitempty"`
	Height       *int   `json:"height,omitempty"`
}
