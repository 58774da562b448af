package models

import "time"

// ReportStatus is the server's report status string. The backend vocabulary
// is open-ended; the constants below cover the observed values and unknown
// strings pass through unchanged.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
	ReportSent     ReportStatus = "sent"
	ReportFailed   ReportStatus = "failed"
)

// Report is a DMCA takedown report generated server-side when a match is
// confirmed. The document itself is fetched separately as a binary download.
type Report struct {
	ID                   int64        `json:"id"`
	MatchID              int64        `json:"match_id"`
	OriginalAssetID      int64        `json:"original_asset_id,omitempty"`
	InfringementGroupID  string       `json:"infringement_group_id,omitempty"`
	InfringingURL        string       `json:"infringing_url"`
	SuspectedImageURL    string       `json:"suspected_image_url,omitempty"`
	SourceDomain         string       `json:"source_domain,omitempty"`
	SourceName           string       `json:"source_name,omitempty"`
	PageTitle            string       `json:"page_title,omitempty"`
	IsProduct            bool         `json:"is_product,omitempty"`
	ProductPrice         string       `json:"product_price,omitempty"`
	Marketplace          string       `json:"marketplace,omitempty"`
	SimilarityScore      float64      `json:"similarity_score,omitempty"`
	Status               ReportStatus `json:"status"`
	CreatedAt            time.Time    `json:"created_at"`
}
