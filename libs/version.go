package libs

const (
	// VERSION current Sundew version
	VERSION = "beta v0.4.1"
	// AUTHOR author of this
	AUTHOR = "@sundew-project"
	// SCOPEFILE default scope rule file name
	SCOPEFILE = "scope.yaml"
)
