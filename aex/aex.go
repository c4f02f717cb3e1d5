package aex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pj "github.com/simonsan-contrib/private-jets"
)

const DefaultHost = "https://globe.adsbexchange.com"

// AdsbExchange fetches historical traces. The history endpoints want a browser session:
// Cookie should be copied from a logged in browser (e.g. "adsbx_sid=...; adsbx_api=...").
type AdsbExchange struct {
	Client *http.Client
	Cookie string
	Host   string // defaults to DefaultHost
}

func New(client *http.Client, cookie string) AdsbExchange {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return AdsbExchange{Client: client, Cookie: cookie, Host: DefaultHost}
}

// {{{ TraceURL

// https://globe.adsbexchange.com/globe_history/2024/01/20/traces/ed/trace_full_45d2ed.json

func (aex AdsbExchange) host() string {
	if aex.Host == "" {
		return DefaultHost
	}
	return strings.TrimSuffix(aex.Host, "/")
}

func NormalizeIcao(icao string) string { return strings.ToLower(strings.TrimSpace(icao)) }

func (aex AdsbExchange) TraceURL(icao string, date time.Time) string {
	icao = NormalizeIcao(icao)
	shard := icao
	if len(icao) > 2 {
		shard = icao[len(icao)-2:]
	}
	return fmt.Sprintf("%s/globe_history/%s/traces/%s/trace_full_%s.json", aex.host(),
		date.UTC().Format("2006/01/02"), shard, icao)
}

func (aex AdsbExchange) referer(icao string, date time.Time) string {
	return fmt.Sprintf("%s/?icao=%s&showTrace=%s", aex.host(), NormalizeIcao(icao),
		date.UTC().Format("2006-01-02"))
}

// }}}
// {{{ UrlToResp

func (aex AdsbExchange) UrlToResp(ctx context.Context, url, referer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	if aex.Cookie != "" {
		req.Header.Set("Cookie", aex.Cookie)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "application/json")

	client := aex.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// }}}
// {{{ FetchRaw, Fetch, FetchTrack

// FetchRaw returns the body of the trace file for the aircraft on the UTC date. An
// aircraft that didn't transmit that day has no file; that comes back as
// pj.ErrNoTraceData.
func (aex AdsbExchange) FetchRaw(ctx context.Context, icao string, date time.Time) ([]byte, error) {
	url := aex.TraceURL(icao, date)

	resp, err := aex.UrlToResp(ctx, url, aex.referer(icao, date))
	if err != nil {
		return nil, fmt.Errorf("AEx/Trace error:%v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("AEx/Trace %s: %w", url, pj.ErrNoTraceData)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("AEx/Trace %s: %s (is the session cookie still valid ?)", url,
			resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("AEx/Trace %s: %s", url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("AEx/Trace read error:%v", err)
	}
	return b, nil
}

func (aex AdsbExchange) Fetch(ctx context.Context, icao string, date time.Time) (*TraceFull, error) {
	b, err := aex.FetchRaw(ctx, icao, date)
	if err != nil {
		return nil, err
	}
	return ParseTrace(b)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
