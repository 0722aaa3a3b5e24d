package images

// Manifest records where each paper's preview image came from and where it
// was stored, one file per issue under assets/figures/manifest.json.
type Manifest struct {
	IssueDate   string                   `json:"issue_date"`
	GeneratedAt string                   `json:"generated_at"`
	Strategy    []string                 `json:"strategy"`
	Papers      map[string]ManifestEntry `json:"papers"`
}

type ManifestEntry struct {
	PaperID    string `json:"paper_id"`
	PaperFile  string `json:"paper_file"`
	Source     string `json:"source"`
	HFPageURL  string `json:"hf_page_url"`
	ImageURL   string `json:"image_url"`
	StoredPath string `json:"stored_path"`
	Excerpt    string `json:"excerpt,omitempty"`
}
