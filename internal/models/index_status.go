package models

// IndexedRepository is one row of the review-indexing batch listing
type IndexedRepository struct {
	Repository   string `json:"repository"`
	Branch       string `json:"branch,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// LiveIndexStatus is the on-demand status of a single repository
type LiveIndexStatus struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
