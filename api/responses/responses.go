package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/logger"
	"github.com/listygo/listygo-backend/pkg/pagination"
	"github.com/listygo/listygo-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Data: data})
}

// WriteList writes a paginated collection: count is always len(data), and
// pagination carries next/prev cursors only when the adjacent page exists.
func WriteList(w http.ResponseWriter, count int, info pagination.PageInfo, data any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{
		Success:    true,
		Count:      &count,
		Pagination: &info,
		Data:       data,
	})
}

// WriteCollection writes an unpaginated collection with a count.
func WriteCollection(w http.ResponseWriter, count int, data any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Count: &count, Data: data})
}

// WriteCategoryList includes the category summary alongside its listings.
func WriteCategoryList(w http.ResponseWriter, count int, category any, data any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{
		Success:  true,
		Count:    &count,
		Category: category,
		Data:     data,
	})
}

// WriteUserToken writes a token response for a user principal.
func WriteUserToken(w http.ResponseWriter, status int, token string, user any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Token: token, User: user})
}

// WriteAdminToken writes a token response for an admin principal.
func WriteAdminToken(w http.ResponseWriter, status int, token string, admin any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Token: token, Admin: admin})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Message: message})
}

// WriteError is the single sink for failed requests. Clients always see
// `{success:false, error:message}`; driver detail goes only to the log.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if meta.DetailsAllowed {
		if detail := flattenDetails(typed.Details()); detail != "" {
			msg = fmt.Sprintf("%s: %s", msg, detail)
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		}

		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Success: false, Error: msg})
}

func flattenDetails(details any) string {
	switch d := details.(type) {
	case nil:
		return ""
	case string:
		return d
	case map[string]string:
		parts := make([]string, 0, len(d))
		for field, msg := range d {
			parts = append(parts, fmt.Sprintf("%s %s", field, msg))
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
