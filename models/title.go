package models

// JobTitleRequest asks for a short generated job title.
type JobTitleRequest struct {
	Services   []string `json:"services"`
	Location   string   `json:"location"`
	ClientType string   `json:"clientType"`
}
