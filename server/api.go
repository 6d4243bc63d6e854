// Package server provides the HTTP API for an in-memory registry of named
// NFA automata.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/nfa"
	"github.com/dekarrin/nfa/server/middle"
	"github.com/dekarrin/nfa/server/result"
	"github.com/dekarrin/nfa/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathPrefix is the prefix of all routes served by the registry API.
const PathPrefix = "/api/v1"

// EndpointFunc is a handler that returns a Result instead of writing
// directly to the ResponseWriter.
type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(unauthDelay time.Duration, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		if r.Status == 0 {
			logHTTPResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(r.Status, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			newResp.WriteResponse(w)
			return
		}

		if r.IsErr {
			logHTTPResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHTTPResponse("INFO", req, r.Status, r.InternalMsg)
		}

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden || r.Status == http.StatusInternalServerError {
			time.Sleep(unauthDelay)
		}

		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		logHTTPResponse("ERROR", req, http.StatusInternalServerError, fmt.Sprintf("panic: %v", panicErr))
		result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).WriteResponse(w)
		return true
	}
	return false
}

func logHTTPResponse(level string, req *http.Request, respStatus int, msg string) {
	for len(level) < 5 {
		level += " "
	}
	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}

// parseJSON decodes req's body into v, which must be a pointer. The request
// body is restored afterward so later middleware may read it again.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

func requireIDParam(req *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(req, "id")
	if idStr == "" {
		return uuid.UUID{}, serr.New("", serr.ErrBadArgument)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.UUID{}, serr.New("", serr.ErrBadArgument)
	}
	return id, nil
}

// buildNode describes one state of an automaton being constructed over the
// wire, identified by a caller-chosen index into buildRequest.Nodes.
type buildNode struct {
	Accept *bool `json:"accept,omitempty"`
}

// buildEdge describes one (from, label, to...) transition. An empty Label
// denotes an epsilon transition.
type buildEdge struct {
	From  int    `json:"from"`
	Label string `json:"label"`
	To    []int  `json:"to"`
}

type buildRequest struct {
	Name    string      `json:"name,omitempty"`
	Start   int         `json:"start"`
	Nodes   []buildNode `json:"nodes"`
	Edges   []buildEdge `json:"edges"`
	Compile bool        `json:"compile,omitempty"`
}

func (br buildRequest) build() (*nfa.State[rune], error) {
	if len(br.Nodes) == 0 {
		return nil, fmt.Errorf("nodes must not be empty")
	}
	if br.Start < 0 || br.Start >= len(br.Nodes) {
		return nil, fmt.Errorf("start %d is out of range for %d nodes", br.Start, len(br.Nodes))
	}

	states := make([]*nfa.State[rune], len(br.Nodes))
	for i, n := range br.Nodes {
		s := nfa.MustNew[rune]()
		if n.Accept != nil {
			if *n.Accept {
				s = s.ForceAccept()
			} else {
				s = s.ForceReject()
			}
		}
		states[i] = s
	}

	for _, e := range br.Edges {
		if e.From < 0 || e.From >= len(states) {
			return nil, fmt.Errorf("edge from %d is out of range", e.From)
		}
		if len(e.To) == 0 {
			return nil, fmt.Errorf("edge from %d has no targets", e.From)
		}
		to := make([]*nfa.State[rune], len(e.To))
		for i, t := range e.To {
			if t < 0 || t >= len(states) {
				return nil, fmt.Errorf("edge to %d is out of range", t)
			}
			to[i] = states[t]
		}

		label := nfa.Eps[rune]()
		if e.Label != "" {
			runes := []rune(e.Label)
			if len(runes) != 1 {
				return nil, fmt.Errorf("label %q must be empty (epsilon) or exactly one rune", e.Label)
			}
			label = nfa.Sym(runes[0])
		}

		if err := states[e.From].AddTransition(label, to...); err != nil {
			return nil, err
		}
	}

	return states[br.Start], nil
}

type automatonSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Compiled  bool   `json:"compiled"`
	Accepting bool   `json:"accepting"`
	NumStates int    `json:"num_states"`
}

func summarize(e *Entry) automatonSummary {
	return automatonSummary{
		ID:        e.ID.String(),
		Name:      e.Name,
		Compiled:  e.Compiled,
		Accepting: e.Start.Accepting(),
		NumStates: len(e.Start.Reachable()),
	}
}

type automatonDetail struct {
	automatonSummary
	Dump string `json:"dump"`
}

type matchRequest struct {
	Input string `json:"input"`
	Full  bool   `json:"full"`
}

type matchResponse struct {
	Matched bool `json:"matched"`
	Length  int  `json:"length,omitempty"`
}

type tokenRequest struct {
	Subject string `json:"subject"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// API wires the registry's endpoints onto a chi.Router.
type API struct {
	Registry    *Registry
	Secret      []byte
	UnauthDelay time.Duration
}

// Mount attaches the registry's routes to r under PathPrefix.
func (a API) Mount(r chi.Router) {
	r.Route(PathPrefix, func(r chi.Router) {
		r.Post("/token", httpEndpoint(a.UnauthDelay, a.issueToken))

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(a.Secret, a.UnauthDelay))

			r.Post("/automata", httpEndpoint(a.UnauthDelay, a.createAutomaton))
			r.Get("/automata", httpEndpoint(a.UnauthDelay, a.listAutomata))
			r.Get("/automata/{id}", httpEndpoint(a.UnauthDelay, a.getAutomaton))
			r.Post("/automata/{id}/match", httpEndpoint(a.UnauthDelay, a.matchAutomaton))
			r.Delete("/automata/{id}", httpEndpoint(a.UnauthDelay, a.deleteAutomaton))
		})
	})
}

func (a API) issueToken(req *http.Request) result.Result {
	var body tokenRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if strings.TrimSpace(body.Subject) == "" {
		return result.BadRequest("subject must not be empty", "empty subject")
	}

	tok, err := middle.Issue(a.Secret, body.Subject, time.Hour)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	return result.Created(tokenResponse{Token: tok})
}

func (a API) createAutomaton(req *http.Request) result.Result {
	var body buildRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	start, err := body.build()
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	e, err := a.Registry.Put(body.Name, start, body.Compile)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(automatonDetail{automatonSummary: summarize(e), Dump: e.Start.String()})
}

func (a API) listAutomata(req *http.Request) result.Result {
	entries := a.Registry.List()
	summaries := make([]automatonSummary, len(entries))
	for i, e := range entries {
		summaries[i] = summarize(e)
	}
	return result.OK(summaries)
}

func (a API) getAutomaton(req *http.Request) result.Result {
	id, err := requireIDParam(req)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	e, ok := a.Registry.Get(id)
	if !ok {
		return result.NotFound()
	}

	return result.OK(automatonDetail{automatonSummary: summarize(e), Dump: e.Start.String()})
}

func (a API) matchAutomaton(req *http.Request) result.Result {
	id, err := requireIDParam(req)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	e, ok := a.Registry.Get(id)
	if !ok {
		return result.NotFound()
	}

	var body matchRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	length, matched := e.Start.Match([]rune(body.Input), body.Full)
	resp := matchResponse{Matched: matched}
	if matched {
		resp.Length = length
	}

	return result.OK(resp)
}

func (a API) deleteAutomaton(req *http.Request) result.Result {
	id, err := requireIDParam(req)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if !a.Registry.Delete(id) {
		return result.NotFound()
	}

	return result.NoContent()
}
