package gql

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func getRequest(r *http.Request) (*request, error) {
	req := &request{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if variables, ok := query["variables"]; ok && variables[0] != "" {
			if err := json.NewDecoder(strings.NewReader(variables[0])).Decode(&req.Variables); err != nil {
				return nil, errors.Wrap(err, "not a valid GraphQL request")
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse media type")
		}
		if mediaType != "application/json" {
			return nil, errors.New("unrecognised Content-Type, use application/json for GraphQL requests")
		}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, errors.Wrap(err, "not a valid GraphQL request body")
		}
	default:
		return nil, errors.New("unrecognised request method, use GET or POST for GraphQL requests")
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New("no query string supplied")
	}
	return req, nil
}
