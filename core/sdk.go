package core

// Console delivers script messages to the host logs. All four calls are
// one-way with no return value.
type Console interface {
	Debug(args ...interface{})
	Log(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

// SDK is the single handle a script receives per invocation. It holds no
// state of its own, just the wired services.
type SDK struct {
	Console  Console
	Requests *Requests
	Findings *Findings
}

// NewSDK compose the services into one access point
func NewSDK(console Console, requests *Requests, findings *Findings) *SDK {
	return &SDK{
		Console:  console,
		Requests: requests,
		Findings: findings,
	}
}

// AsString decode any accepted byte form with the same lossy rules as
// Body.ToText, without building a Body first
func (s *SDK) AsString(data interface{}) string {
	return DecodeLossy(NormalizeBytes(data))
}
