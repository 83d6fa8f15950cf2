package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stationviz/pkg/bridge"
	"github.com/matzehuels/stationviz/pkg/buildinfo"
	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/pipeline"
	"github.com/matzehuels/stationviz/pkg/store"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// maxEventBytes caps an event body. Stabilized events carry every position.
const maxEventBytes = 4 << 20

var contentTypes = map[string]string{
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatGeoJSON: "application/geo+json",
	pipeline.FormatDOT:     "text/vnd.graphviz",
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
}

// OptionsResponse is the body of the options route.
type OptionsResponse struct {
	Options  visgraph.WidgetOptions `json:"options"`
	Viewport *visgraph.Viewport     `json:"viewport,omitempty"`
	Backdrop *visgraph.Backdrop     `json:"backdrop,omitempty"`
}

// EventResponse is the body of the events route.
type EventResponse struct {
	Operation *OperationView `json:"operation,omitempty"`
	Mode      string         `json:"mode"`
}

// OperationView is the JSON form of a bridge operation.
type OperationView struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// PositionsResponse is the body of the positions route.
type PositionsResponse struct {
	Positions  map[string]visgraph.Point `json:"positions"`
	Stabilized bool                      `json:"stabilized"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph"))
		return
	}

	sess, ok := s.stationSession(w, r)
	if !ok {
		return
	}
	out, err := s.runner.Export(r.Context(), sess.host.Dataset(), sess.store.Snapshot(), format, s.cfg.Build)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.stationSession(w, r)
	if !ok {
		return
	}

	canvas := s.cfg.Network.CanvasSize
	if canvas <= 0 {
		canvas = visgraph.DefaultCanvasSize
	}
	resp := OptionsResponse{Options: visgraph.NetworkOptions(s.cfg.Network)}

	q := r.URL.Query()
	cw, errW := strconv.ParseFloat(q.Get("clientWidth"), 64)
	ch, errH := strconv.ParseFloat(q.Get("clientHeight"), 64)
	if errW == nil && errH == nil && cw > 0 && ch > 0 {
		vp := visgraph.InitialViewport(canvas, cw, ch)
		resp.Viewport = &vp
	}

	if st, ok := sess.host.Dataset().StationStop(); ok {
		if bd, ok := s.backdrop.Load(r.Context(), st.ImageURL, canvas); ok {
			resp.Backdrop = &bd
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var env envelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&env); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode event"))
		return
	}
	if env.Type == dialogEventType {
		s.handleDialog(w, r, env)
		return
	}
	ev, err := decodeEvent(env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, ok := s.stationSession(w, r)
	if !ok {
		return
	}
	op, err := sess.bridge.Submit(ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	resp := EventResponse{Mode: sess.bridge.Mode().String()}
	if op != nil {
		status = http.StatusAccepted
		if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
			ctx, cancel := context.WithTimeout(r.Context(), s.cfg.WaitTimeout)
			op.Wait(ctx)
			expired := stderrors.Is(ctx.Err(), context.DeadlineExceeded)
			cancel()
			switch {
			case op.State().Final():
				status = http.StatusOK
			case expired:
				s.writeError(w, r, errors.New(errors.ErrCodeTimeout,
					"operation %s still pending after %s", op.ID, s.cfg.WaitTimeout))
				return
			}
		}
		resp.Operation = viewOperation(op)
		resp.Mode = sess.bridge.Mode().String()
	}
	writeJSON(w, status, resp)
}

// handleDialog records whether the front end shows a modal dialog. While
// it does, keyboard deletes are refused.
func (s *Server) handleDialog(w http.ResponseWriter, r *http.Request, env envelope) {
	shown, err := decodeDialog(env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, ok := s.stationSession(w, r)
	if !ok {
		return
	}
	sess.dialog.Store(shown)
	writeJSON(w, http.StatusOK, EventResponse{Mode: sess.bridge.Mode().String()})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.stationSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PositionsResponse{
		Positions:  sess.host.Positions(),
		Stabilized: sess.host.Stabilized(),
	})
}

// stationSession resolves the {id} parameter, writing the error response
// itself when it cannot.
func (s *Server) stationSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	raw := chi.URLParam(r, "id")
	if err := errors.ValidateStationID(raw); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	id, _ := strconv.Atoi(raw)
	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func viewOperation(op *bridge.Operation) *OperationView {
	v := &OperationView{ID: op.ID, Kind: string(op.Kind), State: op.State().String()}
	if err := op.Err(); err != nil {
		v.Error = err.Error()
	}
	return v
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: RequestID(r.Context()),
	})
}

func classify(err error) (int, errors.Code) {
	switch {
	case stderrors.Is(err, bridge.ErrBusy):
		return http.StatusConflict, errors.ErrCodeBusy
	case stderrors.Is(err, bridge.ErrSuppressed), stderrors.Is(err, bridge.ErrWrongMode):
		return http.StatusConflict, errors.ErrCodeInvalidInput
	case stderrors.Is(err, bridge.ErrNoTarget):
		return http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput
	case stderrors.Is(err, bridge.ErrClosed):
		return http.StatusServiceUnavailable, errors.ErrCodeUnsupported
	case stderrors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errors.ErrCodeNotFound
	}

	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound, code
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidID, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidFormat, errors.ErrCodeDanglingReference:
		return http.StatusBadRequest, code
	case errors.ErrCodeUnsupported:
		return http.StatusBadRequest, code
	case errors.ErrCodeBusy:
		return http.StatusConflict, code
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	}
	return http.StatusInternalServerError, errors.ErrCodeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
