/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
)

const maxBodyBytes = 4 << 20

type envelope map[string]any

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var tooLarge *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)",
				syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q",
					typeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)",
				typeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s",
				strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &tooLarge):
			return fmt.Errorf("body must not be larger than %d bytes",
				tooLarge.Limit)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		log.Printf("api.writeJSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		log.Printf("api.writeJSON: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"error": message})
}

// statusOf maps an error from pairing or finishing a round to the status
// code reported to the client. An exhausted search budget also wraps
// dutch.ErrNoPairing, so it is checked first.
func statusOf(err error) int {
	switch {
	case errors.Is(err, dutch.ErrInvalidPlayer),
		errors.Is(err, dutch.ErrResultCount),
		errors.Is(err, ErrBoardMismatch):
		return http.StatusBadRequest
	case errors.Is(err, dutch.ErrSearchBudget),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dutch.ErrNoPairing):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func pairingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("api: %v %v failed: %v", r.Method, r.URL.Path, err)
		errorResponse(w, status,
			"the server encountered a problem and could not process your request")
		return
	}

	errorResponse(w, status, err.Error())
}
