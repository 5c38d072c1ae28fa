package database

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
	jsoniter "github.com/json-iterator/go"

	"github.com/sundew-project/sundew/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestRecord stored request row
type RequestRecord struct {
	gorm.Model
	RequestID string `gorm:"unique_index"`
	Host      string
	Port      int
	TLS       bool
	Method    string
	Path      string
	Query     string
	Headers   string
	Body      []byte
}

// ResponseRecord stored response row
type ResponseRecord struct {
	gorm.Model
	ResponseID string `gorm:"unique_index"`
	RequestID  string `gorm:"index"`
	Code       int
	Headers    string
	Body       []byte
}

// CaptureStore persists sent exchanges and resolves request references
// for findings. Satisfies the core.Recorder contract.
type CaptureStore struct {
	db *gorm.DB
}

// NewCaptureStore wrap an open database
func NewCaptureStore(db *gorm.DB) *CaptureStore {
	return &CaptureStore{db: db}
}

// Record store one completed exchange
func (s *CaptureStore) Record(pair *core.RequestResponse) error {
	req := pair.Request()
	reqHeaders, _ := json.MarshalToString(req.Headers().Map())
	reqRec := RequestRecord{
		RequestID: req.ID(),
		Host:      req.Host(),
		Port:      req.Port(),
		TLS:       req.TLS(),
		Method:    req.Method(),
		Path:      req.Path(),
		Query:     req.Query(),
		Headers:   reqHeaders,
	}
	if body := req.Body(); body != nil {
		reqRec.Body = body.ToRaw()
	}
	if err := s.db.Create(&reqRec).Error; err != nil {
		return fmt.Errorf("storing request %v: %w", req.ID(), err)
	}

	res := pair.Response()
	resHeaders, _ := json.MarshalToString(res.Headers().Map())
	resRec := ResponseRecord{
		ResponseID: res.ID(),
		RequestID:  req.ID(),
		Code:       res.Code(),
		Headers:    resHeaders,
	}
	if body := res.Body(); body != nil {
		resRec.Body = body.ToRaw()
	}
	if err := s.db.Create(&resRec).Error; err != nil {
		return fmt.Errorf("storing response %v: %w", res.ID(), err)
	}
	return nil
}

// HasRequest check whether a request id is known to the store
func (s *CaptureStore) HasRequest(id string) bool {
	var count int
	s.db.Model(&RequestRecord{}).Where("request_id = ?", id).Count(&count)
	return count > 0
}

// GetRequest rebuild the immutable request stored under id
func (s *CaptureStore) GetRequest(id string) (*core.Request, error) {
	var rec RequestRecord
	if err := s.db.Where("request_id = ?", id).First(&rec).Error; err != nil {
		return nil, fmt.Errorf("loading request %v: %w", id, err)
	}
	var data core.RequestData
	copier.Copy(&data, &rec)
	data.Headers = decodeHeaders(rec.Headers)
	return core.NewRequest(rec.RequestID, data), nil
}

// GetResponse rebuild the immutable response stored under id
func (s *CaptureStore) GetResponse(id string) (*core.Response, error) {
	var rec ResponseRecord
	if err := s.db.Where("response_id = ?", id).First(&rec).Error; err != nil {
		return nil, fmt.Errorf("loading response %v: %w", id, err)
	}
	return core.NewResponse(rec.ResponseID, rec.Code, decodeHeaders(rec.Headers), rec.Body), nil
}

func decodeHeaders(stored string) *core.Headers {
	headers := core.NewHeaders()
	parsed := map[string][]string{}
	json.UnmarshalFromString(stored, &parsed)
	for name, values := range parsed {
		for _, value := range values {
			headers.Add(name, value)
		}
	}
	return headers
}
