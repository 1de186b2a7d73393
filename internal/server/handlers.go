package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/cardspace/pkg/buildinfo"
	"github.com/matzehuels/cardspace/pkg/cache"
	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/render/dot"
	"github.com/matzehuels/cardspace/pkg/scene"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type layoutsResponse struct {
	Layouts   []layout.Kind `json:"layouts"`
	Active    layout.Kind   `json:"active"`
	Animating bool          `json:"animating"`
}

type targetsResponse struct {
	Layout  layout.Kind      `json:"layout"`
	Targets layout.TargetSet `json:"targets"`
}

type changeLayoutRequest struct {
	Layout string `json:"layout"`
}

type objectsResponse struct {
	Active    layout.Kind       `json:"active"`
	Animating bool              `json:"animating"`
	Objects   []scene.CardState `json:"objects"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	var resp layoutsResponse
	err := s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		resp = layoutsResponse{Layouts: layout.Kinds(), Active: sc.Active(), Animating: sc.Animating()}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var set layout.TargetSet
	err = s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		set = sc.Targets()[kind]
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if set == nil {
		set = layout.TargetSet{}
	}
	writeJSON(w, http.StatusOK, targetsResponse{Layout: kind, Targets: set})
}

func (s *Server) handleChangeLayout(w http.ResponseWriter, r *http.Request) {
	var req changeLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	var changed bool
	var active layout.Kind
	err := s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		if _, ok := layout.ParseKind(req.Layout); !ok {
			return sc.ChangeLayout(req.Layout)
		}
		if err := sc.ChangeLayout(req.Layout); err != nil {
			return err
		}
		changed, active = true, sc.Active()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !changed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]layout.Kind{"layout": active})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	var set *records.Set
	err := s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		set = sc.Records()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if set == nil {
		set = &records.Set{Records: []records.Record{}}
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	var resp objectsResponse
	err := s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		resp = objectsResponse{Active: sc.Active(), Animating: sc.Animating(), Objects: sc.Snapshot()}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	n, err := s.loop.Reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"records": n})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = dot.FormatSVG
	}
	contentType, ok := dotFormats[format]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format))
		return
	}
	view, err := dot.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, err)
		return
	}

	var nodes []dot.Node
	var recordsHash string
	err = s.loop.Do(r.Context(), func(sc *scene.Scene) error {
		var recs []records.Record
		if set := sc.Records(); set != nil {
			recs = set.Records
		}
		nodes = dot.FromTargets(sc.Targets()[kind], recs)
		recordsHash = cache.HashJSON(recs)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	key := s.keyer.ArtifactKey(cache.ArtifactKeyOpts{
		Layout:      kind.String(),
		RecordsHash: recordsHash,
		Format:      format,
		OptionsHash: string(view),
	})
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
		return
	}

	src := dot.ToDOT(nodes, dot.Options{View: view, Title: kind.String()})
	data, err := dot.Render(r.Context(), src, format)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, data, cache.TTLArtifact); err != nil {
		s.logger.Warn("snapshot cache write failed", "err", err)
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
