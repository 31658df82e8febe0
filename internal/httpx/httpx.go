// Package httpx writes the {success, data} envelope and maps errors to statuses.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/db"
	"assetdb/internal/logs"
	"assetdb/internal/store"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const RequestIDKey ctxKey = iota

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Message — data для delete-ответов.
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) { JSON(w, http.StatusOK, envelope{Success: true, Data: data}) }

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, failure{Success: false, Message: message, Details: details})
}

// Error — единая точка превращения ошибки в ответ.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, details := Classify(err)

	entry := logs.Logger.WithFields(logrus.Fields{
		"request_id": RequestID(r),
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	Fail(w, status, msg, details)
}

// Classify maps err to status, client message and optional details.
func Classify(err error) (int, string, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Status, ae.Message, ""
	}
	if errors.Is(err, store.ErrInvalidInput) {
		return http.StatusBadRequest, err.Error(), ""
	}
	if kind, detail, ok := db.Classify(err); ok {
		switch kind {
		case db.KindDuplicate:
			return http.StatusBadRequest, "Duplicate entry", detail
		case db.KindForeignKey:
			return http.StatusBadRequest, "Foreign key constraint failed", detail
		default:
			return http.StatusInternalServerError, "Database error", ""
		}
	}
	return http.StatusInternalServerError, "Internal Server Error", ""
}

func RequestID(r *http.Request) string {
	if v, ok := r.Context().Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// ID парсит числовой path-параметр.
func ID(r *http.Request, name string) (uint, error) {
	n, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.BadRequest("Invalid id")
	}
	return uint(n), nil
}

// DecodeFields reads a JSON object body keeping numbers as json.Number.
// An empty body decodes to an empty map.
func DecodeFields(r *http.Request) (store.Fields, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, apperr.BadRequest("Invalid request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return store.Fields{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var f store.Fields
	if err := dec.Decode(&f); err != nil {
		return nil, apperr.BadRequest("Invalid JSON body")
	}
	if f == nil {
		f = store.Fields{}
	}
	return f, nil
}

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil && err != io.EOF {
		return apperr.BadRequest("Invalid JSON body")
	}
	return nil
}

func Search(r *http.Request) string { return strings.TrimSpace(r.URL.Query().Get("search")) }
