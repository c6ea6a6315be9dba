package gql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/graph"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

type IdentityVerifier interface {
	Verify(ctx context.Context, header string) *models.Identity
}

// Handler executes one GraphQL document per HTTP request.
type Handler struct {
	schema   *graphql.Schema
	verifier IdentityVerifier
	logger   logging.Logger
}

func NewHandler(schema *graphql.Schema, verifier IdentityVerifier, logger logging.Logger) *Handler {
	return &Handler{schema: schema, verifier: verifier, logger: logger.With("module", "graphql")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// A bad or missing credential only makes the request anonymous.
	ctx := graph.WithIdentity(r.Context(), h.verifier.Verify(r.Context(), r.Header.Get(common.AuthorizationHeaderName)))

	var res *graphql.Response
	req, err := getRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		res = errorResponse(err)
	} else {
		res = h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	}

	h.write(ctx, w, res)
}

func (h *Handler) write(ctx context.Context, w http.ResponseWriter, res *graphql.Response) {
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.Error(ctx, "write response", "error", err)
	}
}

func errorResponse(err error) *graphql.Response {
	return &graphql.Response{Errors: []*gqlerrors.QueryError{gqlerrors.Errorf("%s", err)}}
}

func commonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// cors allows the browser client at origin to call the API with a bearer
// token. Preflight requests are answered here.
func cors(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func recoveryHandler(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error(r.Context(), "panic while serving request", "panic", fmt.Sprint(p), "path", r.URL.Path)
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(errorResponse(fmt.Errorf("internal server error")))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
