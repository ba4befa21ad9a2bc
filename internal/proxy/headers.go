package proxy

import (
	"net/http"
	"strings"
)

// strippedHeaders — заголовки, которые идентифицируют клиента и не уходят в бэкенд.
var strippedHeaders = []string{
	"Authorization",
	"Cookie",
	"X-Client-Info",
	"Apikey",
	"Origin",
	"Referer",
	"Host",
	"Accept-Encoding", // сжатие согласует транспорт, иначе тело уйдёт клиенту без Content-Encoding
}

// hopByHopHeaders — RFC 7230, 6.1; плюс Content-Length, его выставит транспорт.
var hopByHopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Content-Length",
}

// cleanHeaders — копия входящих заголовков без чувствительных, sec-fetch-* и hop-by-hop.
func cleanHeaders(in http.Header) http.Header {
	out := in.Clone()
	if out == nil {
		return http.Header{}
	}

	// заголовки, перечисленные в Connection, тоже hop-by-hop
	for _, v := range out.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out.Del(name)
			}
		}
	}
	for _, h := range strippedHeaders {
		out.Del(h)
	}
	for _, h := range hopByHopHeaders {
		out.Del(h)
	}
	for name := range out {
		if strings.HasPrefix(strings.ToLower(name), "sec-fetch-") {
			delete(out, name)
		}
	}
	return out
}
