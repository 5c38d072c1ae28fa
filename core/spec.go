package core

import (
	"fmt"
	"net/url"
	"strconv"
)

// RequestSpec is an editable request that has not been sent yet. The
// script owns it exclusively until it is handed to Requests.Send.
type RequestSpec struct {
	host    string
	port    int
	tls     bool
	method  string
	path    string
	query   string
	headers *Headers
	body    *Body
}

// NewRequestSpec parse rawURL into a fresh spec. The scheme picks the tls
// flag and the default port unless the URL carries an explicit one.
func NewRequestSpec(rawURL string) (*RequestSpec, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing URL %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("parsing URL %q: missing host", rawURL)
	}

	spec := &RequestSpec{
		host:    u.Hostname(),
		tls:     u.Scheme == "https",
		method:  "GET",
		path:    u.Path,
		query:   u.RawQuery,
		headers: NewHeaders(),
	}
	if spec.path == "" {
		spec.path = "/"
	}
	if u.Port() != "" {
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("parsing URL %q: bad port %q", rawURL, u.Port())
		}
		spec.port = port
	} else if spec.tls {
		spec.port = 443
	} else {
		spec.port = 80
	}
	return spec, nil
}

// Host target host
func (s *RequestSpec) Host() string { return s.host }

// SetHost change the target host
func (s *RequestSpec) SetHost(host string) { s.host = host }

// Port target port
func (s *RequestSpec) Port() int { return s.port }

// SetPort change the target port
func (s *RequestSpec) SetPort(port int) { s.port = port }

// TLS whether the request will go over TLS
func (s *RequestSpec) TLS() bool { return s.tls }

// SetTLS toggle TLS for the send
func (s *RequestSpec) SetTLS(tls bool) { s.tls = tls }

// Method HTTP method
func (s *RequestSpec) Method() string { return s.method }

// SetMethod change the HTTP method
func (s *RequestSpec) SetMethod(method string) { s.method = method }

// Path request path
func (s *RequestSpec) Path() string { return s.path }

// SetPath change the request path
func (s *RequestSpec) SetPath(path string) { s.path = path }

// Query raw query string without the leading "?"
func (s *RequestSpec) Query() string { return s.query }

// SetQuery change the raw query string
func (s *RequestSpec) SetQuery(query string) { s.query = query }

// Header case-insensitive lookup of the ordered values for name
func (s *RequestSpec) Header(name string) []string {
	return s.headers.Get(name)
}

// Headers returns a copy of the full header multimap
func (s *RequestSpec) Headers() *Headers {
	return s.headers.Clone()
}

// SetHeader replace every value stored under name
func (s *RequestSpec) SetHeader(name, value string) {
	s.headers.Set(name, value)
}

// AddHeader append one more value under name
func (s *RequestSpec) AddHeader(name, value string) {
	s.headers.Add(name, value)
}

// RemoveHeader drop every value stored under any case variant of name
func (s *RequestSpec) RemoveHeader(name string) {
	s.headers.Del(name)
}

// Body the pending body, nil when none is set
func (s *RequestSpec) Body() *Body {
	return s.body
}

// BodyOption tweak SetBody behavior
type BodyOption func(*bodyOptions)

type bodyOptions struct {
	updateContentLength bool
}

// KeepContentLength leave the Content-Length header untouched when the
// body changes. Lets a script build intentionally mismatched requests.
func KeepContentLength() BodyOption {
	return func(o *bodyOptions) {
		o.updateContentLength = false
	}
}

// SetBody replace the spec body. Content-Length is recomputed to the new
// byte length unless KeepContentLength is given.
func (s *RequestSpec) SetBody(data interface{}, opts ...BodyOption) {
	o := bodyOptions{updateContentLength: true}
	for _, opt := range opts {
		opt(&o)
	}
	s.body = NewBody(data)
	if o.updateContentLength {
		s.headers.Set("Content-Length", strconv.Itoa(s.body.Len()))
	}
}

// ToRaw render the current structured state as wire bytes
func (s *RequestSpec) ToRaw() []byte {
	return serializeRequest(s.method, s.path, s.query, s.headers, s.body)
}

// SetRaw discard the structured form and return a raw spec seeded with
// the given bytes. The transition is one-way, only host, port and tls
// carry over.
func (s *RequestSpec) SetRaw(data interface{}) *RequestSpecRaw {
	return &RequestSpecRaw{
		host: s.host,
		port: s.port,
		tls:  s.tls,
		raw:  NormalizeBytes(data),
	}
}

// Target transport target of the spec
func (s *RequestSpec) Target() (host string, port int, tls bool) {
	return s.host, s.port, s.tls
}

func (s *RequestSpec) sendSpec() {}
