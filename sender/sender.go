package sender

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/sundew-project/sundew/core"
	"github.com/sundew-project/sundew/libs"
)

// Client drives specs over the wire and builds the immutable pair out of
// what was actually sent and received. It satisfies the core.Transport
// contract and honors the configured upstream proxy.
type Client struct {
	opt libs.Options
}

// NewClient make a transport client from global options
func NewClient(opt libs.Options) *Client {
	return &Client{opt: opt}
}

// Do send either spec kind
func (c *Client) Do(ctx context.Context, spec core.SendSpec) (*core.RequestResponse, error) {
	switch s := spec.(type) {
	case *core.RequestSpec:
		return c.doStructured(ctx, s)
	case *core.RequestSpecRaw:
		return c.doRaw(ctx, s)
	}
	return nil, fmt.Errorf("unknown spec type %T", spec)
}

// doStructured send a structured spec with resty
func (c *Client) doStructured(ctx context.Context, spec *core.RequestSpec) (*core.RequestResponse, error) {
	client := resty.New()
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	client.SetRedirectPolicy(resty.NoRedirectPolicy())
	if c.opt.Timeout > 0 {
		client.SetTimeout(time.Duration(c.opt.Timeout) * time.Second)
	}
	if c.opt.Proxy != "" {
		client.SetProxy(c.opt.Proxy)
	}

	method := strings.ToUpper(spec.Method())
	headers := spec.Headers()
	req := client.R().SetContext(ctx)
	req.SetHeaderMultiValues(headers.Map())

	var reqBody []byte
	if body := spec.Body(); body != nil {
		reqBody = body.ToRaw()
		req.SetBody(reqBody)
	}

	res, err := req.Execute(method, buildSpecURL(spec))
	if err != nil {
		// a stopped redirect still carries the response we want
		if res == nil || res.RawResponse == nil {
			return nil, err
		}
	}

	request := core.NewRequest(newID(), core.RequestData{
		Host:    spec.Host(),
		Port:    spec.Port(),
		TLS:     spec.TLS(),
		Method:  method,
		Path:    spec.Path(),
		Query:   spec.Query(),
		Headers: headers,
		Body:    reqBody,
	})
	response := core.NewResponse(newID(), res.StatusCode(), convertHeaders(res.Header()), res.Body())
	return core.NewRequestResponse(request, response), nil
}

// doRaw write the verbatim bytes over a plain or TLS connection
func (c *Client) doRaw(ctx context.Context, spec *core.RequestSpecRaw) (*core.RequestResponse, error) {
	address := net.JoinHostPort(spec.Host(), strconv.Itoa(spec.Port()))
	conn, err := c.dial(ctx, address)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if spec.TLS() {
		tlsConn := tls.Client(conn, &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         spec.Host(),
		})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, fmt.Errorf("tls handshake with %v: %w", address, err)
		}
		conn = tlsConn
	}
	if c.opt.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(time.Duration(c.opt.Timeout) * time.Second))
	}

	raw := spec.Raw()
	if _, err := conn.Write(raw); err != nil {
		return nil, fmt.Errorf("writing request to %v: %w", address, err)
	}

	parsedReq, reqData := parseRawRequest(raw)
	reqData.Host = spec.Host()
	reqData.Port = spec.Port()
	reqData.TLS = spec.TLS()

	parsedRes, err := http.ReadResponse(bufio.NewReader(conn), parsedReq)
	if err != nil {
		return nil, fmt.Errorf("reading response from %v: %w", address, err)
	}
	defer parsedRes.Body.Close()
	resBody, _ := ioutil.ReadAll(parsedRes.Body)

	request := core.NewRequest(newID(), reqData)
	response := core.NewResponse(newID(), parsedRes.StatusCode, convertHeaders(parsedRes.Header), resBody)
	return core.NewRequestResponse(request, response), nil
}

// dial open a TCP connection, tunneling through the upstream proxy with
// CONNECT when one is configured
func (c *Client) dial(ctx context.Context, address string) (net.Conn, error) {
	dialer := &net.Dialer{}
	if c.opt.Timeout > 0 {
		dialer.Timeout = time.Duration(c.opt.Timeout) * time.Second
	}

	if c.opt.Proxy == "" {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, fmt.Errorf("connecting to %v: %w", address, err)
		}
		return conn, nil
	}

	proxyURL, err := url.Parse(c.opt.Proxy)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy %q: %w", c.opt.Proxy, err)
	}
	conn, err := dialer.DialContext(ctx, "tcp", proxyURL.Host)
	if err != nil {
		return nil, fmt.Errorf("connecting to proxy %v: %w", proxyURL.Host, err)
	}
	fmt.Fprintf(conn, "CONNECT %v HTTP/1.1\r\nHost: %v\r\n\r\n", address, address)
	res, err := http.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("proxy CONNECT to %v: %w", address, err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		conn.Close()
		return nil, fmt.Errorf("proxy CONNECT to %v refused: %v", address, res.Status)
	}
	return conn, nil
}

// parseRawRequest recover a structured view from verbatim request bytes.
// Unparseable buffers fall back to the raw bytes as body so nothing is
// silently dropped from the capture.
func parseRawRequest(raw []byte) (*http.Request, core.RequestData) {
	var data core.RequestData
	parsed, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		data.Headers = core.NewHeaders()
		data.Body = raw
		return nil, data
	}
	data.Method = parsed.Method
	data.Path = parsed.URL.Path
	data.Query = parsed.URL.RawQuery
	data.Headers = convertHeaders(parsed.Header)
	if parsed.Host != "" && !data.Headers.Has("Host") {
		data.Headers.Add("Host", parsed.Host)
	}
	body, _ := ioutil.ReadAll(parsed.Body)
	if len(body) > 0 {
		data.Body = body
	}
	return parsed, data
}

// convertHeaders map net/http headers into the ordered multimap
func convertHeaders(raw http.Header) *core.Headers {
	headers := core.NewHeaders()
	for name, values := range raw {
		for _, value := range values {
			headers.Add(name, value)
		}
	}
	return headers
}

// buildSpecURL full URL of a structured spec, explicit port included so
// the send hits the spec target even on odd ports
func buildSpecURL(spec *core.RequestSpec) string {
	scheme := "http"
	if spec.TLS() {
		scheme = "https"
	}
	target := fmt.Sprintf("%v://%v", scheme, net.JoinHostPort(spec.Host(), strconv.Itoa(spec.Port())))
	path := spec.Path()
	if path == "" {
		path = "/"
	}
	target += path
	if spec.Query() != "" {
		target += "?" + spec.Query()
	}
	return target
}

func newID() string {
	id, _ := uuid.NewUUID()
	return id.String()
}
