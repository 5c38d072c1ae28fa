package sender

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sundew-project/sundew/core"
	"github.com/sundew-project/sundew/libs"
)

func echoServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		w.Header().Set("X-Upstream", "echo")
		fmt.Fprintf(w, "method=%v path=%v query=%v body=%v", r.Method, r.URL.Path, r.URL.RawQuery, string(body))
	}))
}

func TestSendStructured(t *testing.T) {
	ts := echoServer()
	defer ts.Close()

	spec, err := core.NewRequestSpec(ts.URL + "/anything?x=1")
	if err != nil {
		t.Fatalf("Error parsing URL: %v", err)
	}
	spec.SetMethod("POST")
	spec.SetHeader("Content-Type", "application/json")
	spec.SetBody(`{"example1": 23}`)

	client := NewClient(libs.Options{Timeout: 10})
	pair, err := client.Do(context.Background(), spec)
	if err != nil {
		t.Fatalf("Error sending request: %v", err)
	}

	if pair.Response().Code() != 200 {
		t.Errorf("Error status: %v", pair.Response().Code())
	}
	resBody := pair.Response().Body().ToText()
	if !strings.Contains(resBody, "method=POST") || !strings.Contains(resBody, "path=/anything") {
		t.Errorf("Error echoed request: %v", resBody)
	}
	if !strings.Contains(resBody, "example1") {
		t.Errorf("Error body not sent: %v", resBody)
	}
	if pair.Request().ID() == "" || pair.Response().ID() == "" {
		t.Errorf("Error ids not assigned")
	}
	if pair.Request().Method() != "POST" || pair.Request().Host() != spec.Host() {
		t.Errorf("Error sent request view: %v %v", pair.Request().Method(), pair.Request().Host())
	}
	if v := pair.Response().Header("x-upstream"); len(v) != 1 || v[0] != "echo" {
		t.Errorf("Error response headers: %v", v)
	}
}

func TestSendRaw(t *testing.T) {
	ts := echoServer()
	defer ts.Close()

	u, _ := url.Parse(ts.URL)
	raw := fmt.Sprintf("GET /raw?q=2 HTTP/1.1\r\nHost: %v\r\nConnection: close\r\n\r\n", u.Host)

	spec, err := core.NewRequestSpecRaw(ts.URL)
	if err != nil {
		t.Fatalf("Error parsing URL: %v", err)
	}
	spec.SetRaw(raw)

	client := NewClient(libs.Options{Timeout: 10})
	pair, err := client.Do(context.Background(), spec)
	if err != nil {
		t.Fatalf("Error sending raw request: %v", err)
	}

	if pair.Response().Code() != 200 {
		t.Errorf("Error status: %v", pair.Response().Code())
	}
	resBody := pair.Response().Body().ToText()
	if !strings.Contains(resBody, "path=/raw") || !strings.Contains(resBody, "query=q=2") {
		t.Errorf("Error echoed raw request: %v", resBody)
	}
	if pair.Request().Method() != "GET" || pair.Request().Path() != "/raw" {
		t.Errorf("Error parsed request view: %v %v", pair.Request().Method(), pair.Request().Path())
	}
	if pair.Request().ID() == "" {
		t.Errorf("Error id not assigned")
	}
}

func TestSendFailure(t *testing.T) {
	client := NewClient(libs.Options{Timeout: 2})

	spec, _ := core.NewRequestSpec("http://127.0.0.1:1/")
	if _, err := client.Do(context.Background(), spec); err == nil {
		t.Errorf("Error structured send to dead port succeeded")
	}

	rawSpec, _ := core.NewRequestSpecRaw("http://127.0.0.1:1/")
	rawSpec.SetRaw("GET / HTTP/1.1\r\n\r\n")
	if _, err := client.Do(context.Background(), rawSpec); err == nil {
		t.Errorf("Error raw send to dead port succeeded")
	}
}
