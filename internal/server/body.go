package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/vitalhq/vital-gateway/internal/apperr"
)

// decodeBodyMiddleware parses JSON and form-encoded payloads into a
// structured value on the request context, bounded by the configured
// maximum size. Downstream stages and handlers read the result via
// DecodedBody and never touch r.Body again.
func (s *Server) decodeBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType := r.Header.Get("Content-Type")
		if mediaType != "" {
			if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
				mediaType = parsed
			}
		}

		body, err := decodeBody(w, r, mediaType, s.maxBodyBytes)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if body == nil {
			// Unhandled content type; the handler decides what to do with
			// the raw body, if anything.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithDecodedBody(r.Context(), body)))
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, mediaType string, maxBytes int64) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	switch mediaType {
	case "application/json":
		var body map[string]any
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&body); err != nil {
			if isTooLarge(err) {
				return nil, apperr.New(apperr.CodePayloadTooLarge, "Request payload too large")
			}
			return nil, apperr.Wrap(apperr.CodePayload, "Malformed request body", err)
		}
		return body, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			if isTooLarge(err) {
				return nil, apperr.New(apperr.CodePayloadTooLarge, "Request payload too large")
			}
			return nil, apperr.Wrap(apperr.CodePayload, "Malformed request body", err)
		}
		body := make(map[string]any, len(r.PostForm))
		for key, values := range r.PostForm {
			if len(values) == 1 {
				body[key] = values[0]
			} else {
				body[key] = values
			}
		}
		return body, nil

	default:
		return nil, nil
	}
}

// isTooLarge reports whether err came from MaxBytesReader cutting the
// stream; json.Decoder and ParseForm both surface the reader error.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
