package stateview

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// =============================================================================
// Static File Serving
// =============================================================================

// sanitizeStaticPath validates a prefix-stripped request path and returns the
// cleaned relative path inside the static directory. It refuses anything that
// could name a file outside that directory: NUL bytes, backslashes, absolute
// paths, dot segments, and OS volume names.
func sanitizeStaticPath(rel string) (string, bool) {
	if rel == "" || rel[0] == '/' {
		return "", false
	}
	if strings.IndexByte(rel, 0) >= 0 || strings.IndexByte(rel, '\\') >= 0 {
		return "", false
	}

	// Validate segment by segment instead of cleaning first; cleaning a
	// hostile path can silently change which file it names.
	for _, seg := range strings.Split(rel, "/") {
		switch seg {
		case "", ".", "..":
			return "", false
		}
	}

	clean := path.Clean(rel)
	if osPath := filepath.FromSlash(clean); filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// resolveStatic maps a request URL path to a sanitized path relative to the
// static directory. Rejections are logged at debug level so hostile probes
// show up in dev logs without flooding production ones.
func (a *App) resolveStatic(urlPath string) (string, bool) {
	if a.staticFS == nil || a.staticDir == "" {
		return "", false
	}

	rel := a.stripStaticPrefix(urlPath)
	if rel == "" {
		return "", false
	}

	clean, ok := sanitizeStaticPath(rel)
	if !ok {
		a.logger.Debug("rejected static path", "path", urlPath)
		return "", false
	}
	return clean, true
}

// openStatic opens the sanitized path in the static directory, refusing
// directories.
func (a *App) openStatic(rel string) (http.File, os.FileInfo, error) {
	f, err := a.staticFS.Open(rel)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		if err == nil {
			err = os.ErrNotExist
		}
		return nil, nil, err
	}
	return f, info, nil
}

// shouldServeStatic reports whether the request path names an existing file
// under the static directory.
func (a *App) shouldServeStatic(urlPath string) bool {
	rel, ok := a.resolveStatic(urlPath)
	if !ok {
		return false
	}
	f, _, err := a.openStatic(rel)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// serveStatic handles a static file request. Only GET and HEAD are served;
// state mutation never goes through the static path.
func (a *App) serveStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := a.resolveStatic(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, info, err := a.openStatic(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	if cc := cacheControlFor(a.config.Static.CacheControl, rel); cc != "" {
		w.Header().Set("Cache-Control", cc)
	}
	for key, value := range a.config.Static.Headers {
		w.Header().Set(key, value)
	}

	http.ServeContent(w, r, rel, info.ModTime(), f)
}

// stripStaticPrefix removes the configured URL prefix, returning the path
// relative to the static directory, or "" when the prefix does not match.
func (a *App) stripStaticPrefix(urlPath string) string {
	prefix := a.staticPrefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	if prefix == "/" {
		return strings.TrimPrefix(urlPath, "/")
	}
	if !strings.HasPrefix(urlPath, prefix) {
		return ""
	}
	return strings.TrimPrefix(urlPath, prefix)
}

// cacheControlFor returns the Cache-Control value for a static file, or ""
// when no caching header should be set.
func cacheControlFor(strategy CacheControlStrategy, rel string) string {
	switch strategy {
	case CacheControlNone:
		return "no-store, no-cache, must-revalidate"
	case CacheControlProduction:
		if isFingerprinted(rel) {
			// Content-addressed name: the file never changes under it.
			return "public, max-age=31536000, immutable"
		}
		return "public, max-age=3600, must-revalidate"
	}
	return ""
}

// isFingerprinted reports whether a file name carries a content hash before
// its extension, e.g. "app.a1b2c3d4.css". The hash segment must be at least
// 8 hex characters.
func isFingerprinted(rel string) bool {
	base := path.Base(rel)

	ext := strings.LastIndexByte(base, '.')
	if ext <= 0 {
		return false
	}
	hashStart := strings.LastIndexByte(base[:ext], '.')
	if hashStart < 0 {
		return false
	}

	hash := base[hashStart+1 : ext]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
