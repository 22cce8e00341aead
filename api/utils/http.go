// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// CodeError is the body responded for an error carrying a protocol code.
type CodeError struct {
	Code    uint32 `json:"code"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusOf picks the http status for a protocol code.
func StatusOf(c errcode.Code) int {
	switch {
	case c == errcode.AccountNotFound:
		return http.StatusNotFound
	case c.Kind() == errcode.KindAuthorization:
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// If the returned error is httpError type, httpError.status will be responded.
// An error carrying a protocol code is responded as a CodeError, anything
// else as http.StatusInternalServerError.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var he *httpError
		if errors.As(err, &he) {
			if he.cause != nil {
				http.Error(w, he.cause.Error(), he.status)
			} else {
				w.WriteHeader(he.status)
			}
			return
		}
		if c, ok := errcode.From(err); ok {
			w.Header().Set("Content-Type", JSONContentType)
			w.WriteHeader(StatusOf(c))
			_ = json.NewEncoder(w).Encode(&CodeError{
				Code:    uint32(c),
				Name:    c.Name(),
				Kind:    c.Kind().String(),
				Message: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// PubkeyVar parses the path variable name as a pubkey.
func PubkeyVar(r *http.Request, name string) (restake.Pubkey, error) {
	pk, err := restake.ParsePubkey(mux.Vars(r)[name])
	if err != nil {
		return restake.Pubkey{}, BadRequest(errors.WithMessage(err, name))
	}
	return pk, nil
}

// Uint64Query parses the query parameter name, returning def when absent.
func Uint64Query(r *http.Request, name string, def uint64) (uint64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

// M shortcut for type map[string]any.
type M map[string]any
