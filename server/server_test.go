// Copyright (C) 2020 The Spiffy Authors.
//
// This file is part of Spiffy.
//
// Spiffy is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Spiffy is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Spiffy.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/lib/listenbrainz"
)

const roadTrip = `{"playlist":{"title":"Road Trip","identifier":"https://listenbrainz.org/playlist/road-trip","track":[
{"title":"Song","creator":"Artist","identifier":"http://x"}]}}`

func fakeListenBrainz() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/1/user/rob/playlists", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"playlists":[%s]}`, roadTrip)
	})
	mux.HandleFunc("/1/user/rob/playlists/createdfor", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playlists":[]}`)
	})
	mux.HandleFunc("/1/playlist/road-trip", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, roadTrip)
	})
	mux.HandleFunc("/1/playlist/broken", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playlist":{"title":"Broken"}}`)
	})
	mux.HandleFunc("/1/playlist/garbage", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	})
	mux.HandleFunc("/1/playlist/truncated", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playlist":{"track":[`)
	})
	return httptest.NewServer(mux)
}

func testServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()
	lb := fakeListenBrainz()
	t.Cleanup(lb.Close)

	cfg := config.DefaultConfig()
	cfg.ListenBrainz.URL = lb.URL
	cfg.Client.UseCache = false
	cfg.Client.RateLimit = 0

	srv := httptest.NewServer(routes(makeContextFor(cfg)))
	t.Cleanup(srv.Close)
	return srv, cfg
}

func attachment(t *testing.T, resp *http.Response) string {
	t.Helper()
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		t.Fatal(err)
	}
	return params["filename"]
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func post(t *testing.T, url, data string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestConvertRaw(t *testing.T) {
	srv, _ := testServer(t)
	resp := post(t, srv.URL+"/api/convert?format=m3u&name=Road%20Trip.jspf", roadTrip)
	text := body(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d %s\n", resp.StatusCode, text)
	}
	if resp.Header.Get("Content-Type") != "text/plain" {
		t.Errorf("wrong content type %s\n", resp.Header.Get("Content-Type"))
	}
	if name := attachment(t, resp); name != "Road Trip.m3u" {
		t.Errorf("wrong file name %s\n", name)
	}
	if text != "#EXTM3U\n#EXTINF:-1,Artist - Song\nhttp://x\n" {
		t.Errorf("unexpected output %q\n", text)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request id")
	}
}

func TestConvertMultipart(t *testing.T) {
	srv, _ := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "weekly.JSPF")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(roadTrip))
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/convert?format=xspf", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	text := body(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d %s\n", resp.StatusCode, text)
	}
	if name := attachment(t, resp); name != "weekly.xspf" {
		t.Errorf("wrong file name %s\n", name)
	}
	if !strings.Contains(text, "<location>http://x</location>") {
		t.Errorf("unexpected output %s\n", text)
	}
}

func TestConvertDefaultFormat(t *testing.T) {
	srv, cfg := testServer(t)
	cfg.Convert.Format = "xspf"
	resp := post(t, srv.URL+"/api/convert?name=a.jspf", roadTrip)
	body(t, resp)
	if name := attachment(t, resp); name != "a.xspf" {
		t.Errorf("wrong file name %s\n", name)
	}
}

func TestConvertErrors(t *testing.T) {
	srv, cfg := testServer(t)
	cfg.Server.MaxUpload = 1 << 10

	tests := []struct {
		query  string
		data   string
		code   int
		expect string
	}{
		{"?name=a.json", roadTrip, http.StatusUnsupportedMediaType, "unsupported file extension"},
		{"?name=a.jspf&format=wpl", roadTrip, http.StatusBadRequest, "unsupported format"},
		{"?name=a.jspf", `{"playlist":{"title":"x"}}`, http.StatusBadRequest, "invalid file format"},
		{"?name=a.jspf", `{"playlist":{"track":[{"title":{"a":1}}]}}`, http.StatusBadRequest, "invalid file format"},
		{"?name=a.jspf", `{"playlist":`, http.StatusBadRequest, "unable to read file"},
		{"", roadTrip, http.StatusBadRequest, "missing file"},
		{"?name=a.jspf", strings.Repeat(" ", 2<<10) + roadTrip, http.StatusRequestEntityTooLarge, "file too large"},
	}
	for _, v := range tests {
		resp := post(t, srv.URL+"/api/convert"+v.query, v.data)
		text := body(t, resp)
		if resp.StatusCode != v.code {
			t.Errorf("%s: expected %d got %d\n", v.query, v.code, resp.StatusCode)
		}
		if !strings.HasPrefix(text, v.expect) {
			t.Errorf("%s: expected %q got %q\n", v.query, v.expect, text)
		}
	}
}

func TestUserPlaylists(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/users/rob/playlists")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list []listenbrainz.PlaylistInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "road-trip" || list[0].Title != "Road Trip" {
		t.Errorf("unexpected list %+v\n", list)
	}

	resp, err = http.Get(srv.URL + "/api/users/rob/playlists/createdfor")
	if err != nil {
		t.Fatal(err)
	}
	if text := body(t, resp); strings.TrimSpace(text) != "[]" {
		t.Errorf("expected empty list got %s\n", text)
	}

	resp, err = http.Get(srv.URL + "/api/users/nobody/playlists")
	if err != nil {
		t.Fatal(err)
	}
	body(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 got %d\n", resp.StatusCode)
	}
}

func TestPlaylistGet(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/playlists/road-trip?format=xspf")
	if err != nil {
		t.Fatal(err)
	}
	text := body(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d %s\n", resp.StatusCode, text)
	}
	if name := attachment(t, resp); name != "road_trip.xspf" {
		t.Errorf("wrong file name %s\n", name)
	}

	tests := map[string]int{
		"/api/playlists/missing": http.StatusNotFound,
		"/api/playlists/broken":  http.StatusBadGateway,
		"/api/playlists/garbage": http.StatusBadGateway,
		"/api/users/rob/exports": http.StatusNotFound,
		"/api/users/rob/unknown": http.StatusNotFound,

		"/api/playlists/truncated": http.StatusBadGateway,
	}
	for path, code := range tests {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body(t, resp)
		if resp.StatusCode != code {
			t.Errorf("%s: expected %d got %d\n", path, code, resp.StatusCode)
		}
	}

	resp, err = http.Get(srv.URL + "/api/playlists/garbage")
	if err != nil {
		t.Fatal(err)
	}
	if text := body(t, resp); !strings.HasPrefix(text, "invalid file format") {
		t.Errorf("expected invalid file format got %q\n", text)
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := testServer(t)
	body(t, post(t, srv.URL+"/api/convert?name=a.jspf", roadTrip))

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	text := body(t, resp)
	for _, s := range []string{"spiffy_http_requests_total", "spiffy_conversions_total"} {
		if !strings.Contains(text, s) {
			t.Errorf("missing %s\n", s)
		}
	}
}
