// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
)

// HashHeader carries the hex HMAC-SHA256 of a body under the shared hash key.
const HashHeader = "HashSHA256"

// withHashing checks the HashSHA256 header of incoming bodies and signs
// every response body. Requests without the header pass unchecked.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if want := r.Header.Get(HashHeader); want != "" && r.Body != nil {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
				writeError(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !utils.VerifyHex(body, want) {
				log.Warn().Str("func", "*Handler.withHashing").Msg("hashes are not equal")
				writeError(w, r, ErrIntegrityCheckFailed)
				return
			}
		}

		hw := &hashingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(hw, r)

		w.Header().Set(HashHeader, utils.HashHex(hw.body.Bytes()))
		w.WriteHeader(hw.status)
		if _, err := w.Write(hw.body.Bytes()); err != nil {
			log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to write response")
		}
	})
}

// hashingResponseWriter holds the response back until it can be signed.
type hashingResponseWriter struct {
	http.ResponseWriter

	status int
	body   bytes.Buffer
}

func (w *hashingResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *hashingResponseWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}
