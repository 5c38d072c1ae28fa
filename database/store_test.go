package database

import (
	"context"
	"path"
	"testing"

	"github.com/jinzhu/gorm"

	"github.com/sundew-project/sundew/core"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(path.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Error opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPair() *core.RequestResponse {
	headers := core.NewHeaders()
	headers.Add("Host", "example.com")
	headers.Add("X-A", "1")
	req := core.NewRequest("req-42", core.RequestData{
		Host:    "example.com",
		Port:    443,
		TLS:     true,
		Method:  "POST",
		Path:    "/login",
		Query:   "next=home",
		Headers: headers,
		Body:    []byte("user=admin"),
	})
	resHeaders := core.NewHeaders()
	resHeaders.Add("Content-Type", "text/html")
	res := core.NewResponse("res-42", 302, resHeaders, []byte("redirecting"))
	return core.NewRequestResponse(req, res)
}

func TestCaptureRoundTrip(t *testing.T) {
	store := NewCaptureStore(testDB(t))

	if err := store.Record(testPair()); err != nil {
		t.Fatalf("Error recording exchange: %v", err)
	}
	if !store.HasRequest("req-42") || store.HasRequest("ghost") {
		t.Errorf("Error request lookup")
	}

	req, err := store.GetRequest("req-42")
	if err != nil {
		t.Fatalf("Error loading request: %v", err)
	}
	if req.Host() != "example.com" || req.Port() != 443 || !req.TLS() || req.Method() != "POST" {
		t.Errorf("Error stored request fields")
	}
	if v := req.Header("x-a"); len(v) != 1 || v[0] != "1" {
		t.Errorf("Error stored headers: %v", v)
	}
	if req.Body().ToText() != "user=admin" {
		t.Errorf("Error stored body")
	}

	res, err := store.GetResponse("res-42")
	if err != nil {
		t.Fatalf("Error loading response: %v", err)
	}
	if res.Code() != 302 || res.Body().ToText() != "redirecting" {
		t.Errorf("Error stored response fields")
	}
}

func TestFindingSave(t *testing.T) {
	db := testDB(t)
	capture := NewCaptureStore(db)
	store := NewFindingDB(db, capture)

	pair := testPair()
	if err := capture.Record(pair); err != nil {
		t.Fatalf("Error recording exchange: %v", err)
	}

	finding, err := store.Save(context.Background(), core.FindingSpec{
		Title:    "Open redirect",
		Reporter: "tester",
		Request:  pair.Request(),
	})
	if err != nil {
		t.Fatalf("Error saving finding: %v", err)
	}
	if finding.ID() == "" || finding.ID() == pair.Request().ID() {
		t.Errorf("Error finding id: %v", finding.ID())
	}
	if finding.Title() != "Open redirect" || finding.Reporter() != "tester" {
		t.Errorf("Error finding fields")
	}

	ghost := core.NewRequest("ghost", core.RequestData{Host: "example.com"})
	if _, err := store.Save(context.Background(), core.FindingSpec{Title: "x", Request: ghost}); err == nil {
		t.Errorf("Error unknown request reference accepted")
	}
}

func TestFindingDedupe(t *testing.T) {
	db := testDB(t)
	capture := NewCaptureStore(db)
	store := NewFindingDB(db, capture)

	pair := testPair()
	capture.Record(pair)

	spec := core.FindingSpec{Title: "dup", Reporter: "tester", DedupeKey: "same-key", Request: pair.Request()}
	first, err := store.Save(context.Background(), spec)
	if err != nil {
		t.Fatalf("Error saving finding: %v", err)
	}
	second, err := store.Save(context.Background(), spec)
	if err != nil {
		t.Fatalf("Error saving duplicate: %v", err)
	}
	if first.ID() != second.ID() {
		t.Errorf("Error dedupe key ignored: %v %v", first.ID(), second.ID())
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	pair := testPair()

	if err := store.Record(pair); err != nil {
		t.Fatalf("Error recording exchange: %v", err)
	}
	finding, err := store.Save(context.Background(), core.FindingSpec{
		Title:    "in memory",
		Reporter: "tester",
		Request:  pair.Request(),
	})
	if err != nil {
		t.Fatalf("Error saving finding: %v", err)
	}
	if finding.ID() == "" || len(store.Findings()) != 1 {
		t.Errorf("Error memory store state")
	}

	ghost := core.NewRequest("ghost", core.RequestData{Host: "example.com"})
	if _, err := store.Save(context.Background(), core.FindingSpec{Title: "x", Request: ghost}); err == nil {
		t.Errorf("Error unknown request reference accepted")
	}
}
