package cfg

type Cfg struct {
	// Command selects the run mode: serve, snapshot, import, images, build, all
	Command string

	// Content layout
	DataDir      string
	IssuesDir    string
	ConfigPath   string
	MockPath     string
	DBPath       string
	TemplatePath string
	IndexPath    string

	// Papers feed import
	PapersFeedURL string
	PapersLimit   int

	// Server configuration
	Port         string
	APIAccessKey string
	Watch        bool

	// Snapshot source
	XBearerToken string
	Date         string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
