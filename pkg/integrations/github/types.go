package github

// RepoLicense is the license GitHub detected for a repository.
type RepoLicense struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	SPDXID  string `json:"spdxId"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// rateLimitResponse is the GET /rate_limit payload.
type rateLimitResponse struct {
	Resources struct {
		Core struct {
			Limit     int   `json:"limit"`
			Remaining int   `json:"remaining"`
			Reset     int64 `json:"reset"`
		} `json:"core"`
	} `json:"resources"`
}

// licenseResponse is the GET /repos/{owner}/{repo}/license payload.
type licenseResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	HTMLURL  string `json:"html_url"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	License  struct {
		Key    string `json:"key"`
		Name   string `json:"name"`
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}
