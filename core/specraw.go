package core

// RequestSpecRaw holds a request as verbatim bytes for cases the
// structured spec cannot express, malformed requests included. Host, port
// and tls travel next to the buffer since raw bytes alone cannot name the
// transport target.
type RequestSpecRaw struct {
	host string
	port int
	tls  bool
	raw  []byte
}

// NewRequestSpecRaw parse rawURL for the transport target and start with
// an empty byte buffer
func NewRequestSpecRaw(rawURL string) (*RequestSpecRaw, error) {
	spec, err := NewRequestSpec(rawURL)
	if err != nil {
		return nil, err
	}
	return spec.SetRaw(nil), nil
}

// Host target host
func (s *RequestSpecRaw) Host() string { return s.host }

// SetHost change the target host
func (s *RequestSpecRaw) SetHost(host string) { s.host = host }

// Port target port
func (s *RequestSpecRaw) Port() int { return s.port }

// SetPort change the target port
func (s *RequestSpecRaw) SetPort(port int) { s.port = port }

// TLS whether the request will go over TLS
func (s *RequestSpecRaw) TLS() bool { return s.tls }

// SetTLS toggle TLS for the send
func (s *RequestSpecRaw) SetTLS(tls bool) { s.tls = tls }

// Raw returns a copy of the verbatim request bytes
func (s *RequestSpecRaw) Raw() []byte {
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out
}

// SetRaw replace the verbatim request bytes
func (s *RequestSpecRaw) SetRaw(data interface{}) {
	s.raw = NormalizeBytes(data)
}

// Target transport target of the spec
func (s *RequestSpecRaw) Target() (host string, port int, tls bool) {
	return s.host, s.port, s.tls
}

func (s *RequestSpecRaw) sendSpec() {}
