package core

import (
	"fmt"
	"strings"
)

// Request is a read-only view over one captured HTTP request. Instances
// are owned by the host capture store, scripts only ever read them.
type Request struct {
	id      string
	host    string
	port    int
	tls     bool
	method  string
	path    string
	query   string
	headers *Headers
	body    *Body
}

// RequestData carries the structured fields needed to build an immutable
// Request. Host-side packages (transport, capture store) fill it in.
type RequestData struct {
	Host    string
	Port    int
	TLS     bool
	Method  string
	Path    string
	Query   string
	Headers *Headers
	Body    []byte
}

// NewRequest build an immutable Request from captured data. Everything is
// copied, later changes to data never show up on the returned value.
func NewRequest(id string, data RequestData) *Request {
	headers := data.Headers
	if headers == nil {
		headers = NewHeaders()
	}
	req := &Request{
		id:      id,
		host:    data.Host,
		port:    data.Port,
		tls:     data.TLS,
		method:  data.Method,
		path:    data.Path,
		query:   data.Query,
		headers: headers.Clone(),
	}
	if data.Body != nil {
		req.body = NewBody(data.Body)
	}
	return req
}

// ID stable identifier assigned at capture time
func (r *Request) ID() string { return r.id }

// Host target host
func (r *Request) Host() string { return r.host }

// Port target port
func (r *Request) Port() int { return r.port }

// TLS whether the request went over TLS
func (r *Request) TLS() bool { return r.tls }

// Method HTTP method
func (r *Request) Method() string { return r.method }

// Path request path
func (r *Request) Path() string { return r.path }

// Query raw query string without the leading "?"
func (r *Request) Query() string { return r.query }

// Header case-insensitive lookup of the ordered values for name
func (r *Request) Header(name string) []string {
	return r.headers.Get(name)
}

// Headers returns a copy of the full header multimap
func (r *Request) Headers() *Headers {
	return r.headers.Clone()
}

// Body the captured body, nil when the request had none
func (r *Request) Body() *Body {
	return r.body
}

// URL rebuild the full URL of the request
func (r *Request) URL() string {
	return buildURL(r.host, r.port, r.tls, r.path, r.query)
}

// ToSpec derive a mutable structured copy, fully disconnected from the
// request it came from
func (r *Request) ToSpec() *RequestSpec {
	spec := &RequestSpec{
		host:    r.host,
		port:    r.port,
		tls:     r.tls,
		method:  r.method,
		path:    r.path,
		query:   r.query,
		headers: r.headers.Clone(),
	}
	if r.body != nil {
		spec.body = NewBody(r.body.ToRaw())
	}
	return spec
}

// ToSpecRaw serialize the request into an editable raw spec
func (r *Request) ToSpecRaw() *RequestSpecRaw {
	return &RequestSpecRaw{
		host: r.host,
		port: r.port,
		tls:  r.tls,
		raw:  serializeRequest(r.method, r.path, r.query, r.headers, r.body),
	}
}

// Response is a read-only view over one captured HTTP response.
type Response struct {
	id      string
	code    int
	headers *Headers
	body    *Body
}

// NewResponse build an immutable Response from captured data
func NewResponse(id string, code int, headers *Headers, body []byte) *Response {
	if headers == nil {
		headers = NewHeaders()
	}
	res := &Response{
		id:      id,
		code:    code,
		headers: headers.Clone(),
	}
	if body != nil {
		res.body = NewBody(body)
	}
	return res
}

// ID stable identifier assigned at capture time
func (r *Response) ID() string { return r.id }

// Code numeric status code
func (r *Response) Code() int { return r.code }

// Header case-insensitive lookup of the ordered values for name
func (r *Response) Header(name string) []string {
	return r.headers.Get(name)
}

// Headers returns a copy of the full header multimap
func (r *Response) Headers() *Headers {
	return r.headers.Clone()
}

// Body the captured body, nil when the response had none
func (r *Response) Body() *Body {
	return r.body
}

// RequestResponse pairs a sent request with the response it produced.
// Only a completed send creates one.
type RequestResponse struct {
	request  *Request
	response *Response
}

// NewRequestResponse pair up a completed exchange
func NewRequestResponse(request *Request, response *Response) *RequestResponse {
	return &RequestResponse{request: request, response: response}
}

// Request the request as it was actually sent
func (rr *RequestResponse) Request() *Request { return rr.request }

// Response the response that came back
func (rr *RequestResponse) Response() *Response { return rr.response }

// buildURL assemble a full URL, hiding the default port of the scheme
func buildURL(host string, port int, tls bool, reqPath, query string) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	target := host
	if port != 0 && !(tls && port == 443) && !(!tls && port == 80) {
		target = fmt.Sprintf("%v:%v", host, port)
	}
	if reqPath == "" {
		reqPath = "/"
	}
	u := fmt.Sprintf("%v://%v%v", scheme, target, reqPath)
	if query != "" {
		u += "?" + query
	}
	return u
}

// serializeRequest render start line, headers and body as wire bytes
func serializeRequest(method, reqPath, query string, headers *Headers, body *Body) []byte {
	if method == "" {
		method = "GET"
	}
	target := reqPath
	if target == "" {
		target = "/"
	}
	if query != "" {
		target += "?" + query
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v %v HTTP/1.1\r\n", method, target))
	headers.Each(func(name, value string) {
		sb.WriteString(fmt.Sprintf("%v: %v\r\n", name, value))
	})
	sb.WriteString("\r\n")
	raw := []byte(sb.String())
	if body != nil {
		raw = append(raw, body.ToRaw()...)
	}
	return raw
}
