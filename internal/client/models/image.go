package models

import "time"

// Image is an uploaded image record owned by the server. Read-only from the
// client's perspective.
type Image struct {
	ID            int64     `json:"id"`
	ImageURL      string    `json:"image_url"`
	SourcePageURL string    `json:"source_page_url,omitempty"`
	Domain        string    `json:"domain,omitempty"`
	PageTitle     string    `json:"page_title,omitempty"`
	ImgAlt        string    `json:"img_alt,omitempty"`
	S3Path        string    `json:"s3_path,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Caption returns the best available display caption for the image.
func (i *Image) Caption() string {
	if i.ImgAlt != "" {
		return i.ImgAlt
	}
	if i.PageTitle != "" {
		return i.PageTitle
	}
	return i.ImageURL
}
