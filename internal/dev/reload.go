// Package dev implements the development-mode live reload channel. A
// Reloader accepts browser WebSocket connections and pushes reload events
// published on its event bus, so any part of the process (the CLI's file
// watcher, a template recompile, a test) can trigger a browser refresh by
// publishing an event.
package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	ebu "github.com/jilio/ebu"
)

// ReloadType classifies a reload event.
type ReloadType string

const (
	ReloadFull  ReloadType = "reload"
	ReloadCSS   ReloadType = "css"
	ReloadError ReloadType = "error"
	ReloadClear ReloadType = "clear"
)

// ReloadEvent is published on the bus and forwarded to browsers as JSON.
type ReloadEvent struct {
	Type  ReloadType `json:"type"`
	Error string     `json:"error,omitempty"`
	File  string     `json:"file,omitempty"`
}

// Reloader manages WebSocket connections for live reload.
type Reloader struct {
	bus      *ebu.EventBus
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewReloader creates a reloader with its own event bus.
func NewReloader(logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reloader{
		bus:     ebu.New(),
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				return true // dev mode only
			},
		},
	}

	if err := ebu.Subscribe(r.bus, r.broadcast); err != nil {
		logger.Error("reload bus subscribe failed", "error", err)
	}
	return r
}

// Bus returns the reloader's event bus. Publishers push ReloadEvent values
// on it; anything else is ignored.
func (r *Reloader) Bus() *ebu.EventBus {
	return r.bus
}

// ServeHTTP handles WebSocket upgrade and holds the connection open until
// the client disconnects.
func (r *Reloader) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	r.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// NotifyReload publishes a full page reload.
func (r *Reloader) NotifyReload() {
	ebu.Publish(r.bus, ReloadEvent{Type: ReloadFull})
}

// NotifyCSS publishes a CSS-only reload for the given file.
func (r *Reloader) NotifyCSS(file string) {
	ebu.Publish(r.bus, ReloadEvent{Type: ReloadCSS, File: file})
}

// NotifyError publishes a build error for the browser overlay.
func (r *Reloader) NotifyError(errMsg string) {
	ebu.Publish(r.bus, ReloadEvent{Type: ReloadError, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (r *Reloader) ClearError() {
	ebu.Publish(r.bus, ReloadEvent{Type: ReloadClear})
}

// broadcast forwards a bus event to all connected clients.
func (r *Reloader) broadcast(msg ReloadEvent) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			r.mu.Lock()
			delete(r.clients, client)
			r.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (r *Reloader) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *Reloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}

// ClientScript is the JavaScript for live reload, injected into pages in
// development mode.
const ClientScript = `
<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/_stateview/reload');

        ws.onopen = function() {
            console.log('[stateview] Live reload connected');
            reconnectDelay = 1000;
            clearErrorOverlay();
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'reload':
                    location.reload();
                    break;

                case 'css':
                    reloadCSS();
                    break;

                case 'error':
                    console.error('[stateview] Build error:', msg.error);
                    showErrorOverlay(msg.error);
                    break;

                case 'clear':
                    clearErrorOverlay();
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function reloadCSS() {
        var links = document.querySelectorAll('link[rel="stylesheet"]');
        links.forEach(function(link) {
            var url = new URL(link.href);
            url.searchParams.set('_reload', Date.now());
            link.href = url.toString();
        });
    }

    function showErrorOverlay(error) {
        clearErrorOverlay();

        var overlay = document.createElement('div');
        overlay.id = 'stateview-error-overlay';
        overlay.style.cssText = 'position:fixed;top:0;left:0;right:0;bottom:0;background:rgba(0,0,0,0.9);color:#fff;font-family:monospace;font-size:14px;padding:20px;overflow:auto;z-index:999999;';

        var pre = document.createElement('pre');
        pre.style.cssText = 'white-space:pre-wrap;word-wrap:break-word;background:#1a1a1a;padding:20px;border-radius:8px;border:1px solid #333;';
        pre.textContent = error;

        overlay.appendChild(pre);
        document.body.appendChild(overlay);
    }

    function clearErrorOverlay() {
        var overlay = document.getElementById('stateview-error-overlay');
        if (overlay) {
            overlay.remove();
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
