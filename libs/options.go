package libs

// Options global options
type Options struct {
	RootFolder string
	ConfigFile string
	ScopeFile  string
	LogFile    string
	Proxy      string
	Reporter   string

	Concurrency int
	Timeout     int
	Verbose     bool
	Debug       bool
	NoDB        bool
}
