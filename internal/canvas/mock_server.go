// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package canvas

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MockServer provides a configurable canvas API mock server for testing.
type MockServer struct {
	*httptest.Server
	mu       sync.RWMutex
	body     []byte
	status   int
	delay    time.Duration
	requests int
	lastHdr  http.Header
	lastURL  url.URL
}

// DefaultCanvas is a small canvas with two live matches, one upcoming match,
// a duplicate item and a non-event item.
const DefaultCanvas = `{
  "data": {
    "canvas": {
      "shelves": [
        {
          "items": [
            {
              "id": "umc.cse.live1",
              "type": "SportingEvent",
              "title": "Inter Miami CF vs. LA Galaxy",
              "shortTitle": "MIA vs LA",
              "leagueName": "Major League Soccer",
              "leagueAbbreviation": "MLS",
              "sportName": "Soccer",
              "venueName": "Chase Stadium",
              "url": "/us/sporting-event/inter-miami-cf-vs-la-galaxy/umc.cse.live1",
              "airingType": "Live",
              "eventTime": 1755203400000,
              "heroDescription": "Messi returns to Chase Stadium.",
              "images": {"hero": {"url": "https://img/hero1.jpg"}},
              "competitors": [
                {"name": "Inter Miami CF", "abbreviation": "MIA", "id": "t1", "logo": {"url": "https://img/mia.png"}},
                {"name": "LA Galaxy", "abbreviation": "LA", "id": "t2"}
              ],
              "playables": [
                {
                  "id": "tvs.sbd.7000:umc.cse.live1",
                  "type": "SportingEvent",
                  "canonicalMetadata": {"images": {"contentImage": {"url": "https://img/composite1.jpg"}}}
                }
              ]
            },
            {
              "id": "umc.cse.live2",
              "type": "SportingEvent",
              "title": "Seattle Sounders FC vs. Portland Timbers",
              "leagueName": "Major League Soccer",
              "url": "/us/sporting-event/seattle-vs-portland/umc.cse.live2",
              "airingType": "Live",
              "eventTime": "2025-08-14T20:05:00Z",
              "competitors": [
                {"name": "Seattle Sounders FC", "abbreviation": "SEA", "id": "t3"},
                {"name": "Portland Timbers", "abbreviation": "POR", "id": "t4"}
              ],
              "playables": [{"id": "tvs.sbd.7000:umc.cse.live2", "type": "SportingEvent"}]
            }
          ]
        },
        {
          "items": [
            {
              "id": "umc.cse.next",
              "type": "SportingEvent",
              "title": "Austin FC vs. FC Dallas",
              "leagueName": "MLS NEXT Pro",
              "airingType": "Upcoming",
              "competitors": [
                {"name": "Austin FC", "id": "t5"},
                {"name": "FC Dallas", "id": "t6"}
              ]
            },
            {"id": "umc.cse.live1", "type": "SportingEvent", "title": "duplicate"},
            {"id": "promo", "type": "Promotion", "title": "Season Pass"}
          ]
        }
      ]
    }
  }
}`

// NewMockServer creates a mock serving DefaultCanvas for any channel.
func NewMockServer() *MockServer {
	mock := &MockServer{body: []byte(DefaultCanvas), status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/canvases/channels/", mock.handleCanvas)

	mock.Server = httptest.NewServer(mux)
	return mock
}

// SetResponse replaces the canvas status and body.
func (m *MockServer) SetResponse(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.body = []byte(body)
}

// SetDelay delays every response.
func (m *MockServer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Requests reports how many canvas requests were served.
func (m *MockServer) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests
}

// LastRequest returns the headers and URL of the most recent request.
func (m *MockServer) LastRequest() (http.Header, url.URL) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHdr.Clone(), m.lastURL
}

func (m *MockServer) handleCanvas(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests++
	m.lastHdr = r.Header.Clone()
	m.lastURL = *r.URL
	status, body, delay := m.status, m.body, m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if strings.Trim(strings.TrimPrefix(r.URL.Path, "/canvases/channels/"), "/") == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
