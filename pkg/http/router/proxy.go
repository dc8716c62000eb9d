package router

import (
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const UPSTREAM_DIAL_TIMEOUT = 3 * time.Second

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

// upstream. forwards a websocket upgrade request to the server at addr, then splices the hijacked
// client connection with the upstream one until either side closes.
func (api *API) upstream(name, network, addr string) func(w http.ResponseWriter, r *http.Request) {
	dialer := net.Dialer{Timeout: UPSTREAM_DIAL_TIMEOUT}

	return func(w http.ResponseWriter, r *http.Request) {
		if !isWebsocketUpgrade(r) {
			writeErrorJSON(w, http.StatusBadRequest, "expected a websocket upgrade request")
			return
		}

		peer, err := dialer.DialContext(r.Context(), network, addr)
		if err != nil {
			api.log.Error("dial upstream failed", zap.String("upstream", name), zap.Error(err))
			writeErrorJSON(w, http.StatusBadGateway, "live prediction server unavailable")
			return
		}

		hj, ok := w.(http.Hijacker)
		if !ok {
			peer.Close()
			writeErrorJSON(w, http.StatusInternalServerError, "connection can not be hijacked")
			return
		}
		conn, buffered, err := hj.Hijack()
		if err != nil {
			peer.Close()
			api.log.Error("hijack failed", zap.String("upstream", name), zap.Error(err))
			return
		}

		if err := r.Write(peer); err != nil {
			api.log.Error("forward upgrade request failed", zap.String("upstream", name), zap.Error(err))
			peer.Close()
			conn.Close()
			return
		}

		// bytes the client sent after its request headers are already in the hijacked reader
		var client io.Reader = conn
		if buffered.Reader.Buffered() > 0 {
			client = io.MultiReader(buffered.Reader, conn)
		}

		var once sync.Once
		closeBoth := func() {
			once.Do(func() {
				peer.Close()
				conn.Close()
			})
		}
		go func() {
			defer closeBoth()
			_, _ = io.Copy(peer, client)
		}()
		go func() {
			defer closeBoth()
			_, _ = io.Copy(conn, peer)
		}()
	}
}
