package httpx

import "net/http"

const (
	MsgNotFound         = "not found"
	MsgMethodNotAllowed = "method not allowed"
)

// JSONMux serves mux, replacing the plain-text 404 and 405 replies the mux
// writes for requests that match no pattern with {"error": ...} bodies. The
// Allow header of a 405 is kept. Matched routes are served untouched.
func JSONMux(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}

type jsonErrorWriter struct {
	http.ResponseWriter
	replaced bool
}

func (w *jsonErrorWriter) WriteHeader(code int) {
	switch code {
	case http.StatusNotFound:
		w.replaced = true
		WriteError(w.ResponseWriter, code, MsgNotFound)
	case http.StatusMethodNotAllowed:
		w.replaced = true
		WriteError(w.ResponseWriter, code, MsgMethodNotAllowed)
	default:
		w.ResponseWriter.WriteHeader(code)
	}
}

// Write drops the mux's own body once a JSON error has been written.
func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *jsonErrorWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
