// Package responsewriter records what a handler wrote: status and size for
// request logs and metrics, and with Capture the body for the page cache.
package responsewriter

import (
	"bytes"
	"net/http"
)

// Recorder is an http.ResponseWriter that passes everything through.
type Recorder struct {
	http.ResponseWriter
	status int
	size   int
	copy   *bytes.Buffer
}

// Wrap starts recording w.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w}
}

// Capture is Wrap plus a copy of the body.
func Capture(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, copy: &bytes.Buffer{}}
}

// WriteHeader forwards only the first status.
func (r *Recorder) WriteHeader(status int) {
	if r.status != 0 {
		return
	}
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.WriteHeader(http.StatusOK)
	n, err := r.ResponseWriter.Write(p)
	r.size += n
	if r.copy != nil {
		r.copy.Write(p[:n])
	}
	return n, err
}

// StatusCode is the status sent, or 200 when the handler wrote nothing.
func (r *Recorder) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// BytesWritten counts body bytes accepted by the underlying writer.
func (r *Recorder) BytesWritten() int { return r.size }

// Body is nil unless the Recorder came from Capture.
func (r *Recorder) Body() []byte {
	if r.copy == nil {
		return nil
	}
	return r.copy.Bytes()
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
