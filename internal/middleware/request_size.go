package middleware

import (
	"mime"
	"net/http"
)

// MaxJSONBodySize caps every request body that is not a multipart video upload
const MaxJSONBodySize int64 = 1 << 20

// BodyLimitMiddleware rejects oversized request bodies.
// Multipart uploads may be up to maxUploadSize bytes, any other body up to MaxJSONBodySize.
// Bodies without a declared length are cut off by http.MaxBytesReader while being read.
func BodyLimitMiddleware(maxUploadSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := bodyLimit(r, maxUploadSize)
			if r.ContentLength > limit {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// bodyLimit picks the limit for the request by its media type
func bodyLimit(r *http.Request, maxUploadSize int64) int64 {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "multipart/form-data" {
		return maxUploadSize
	}
	return MaxJSONBodySize
}
