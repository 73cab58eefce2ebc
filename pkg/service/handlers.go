package service

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridtable/pkg/cache"
	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/pipeline"
	"github.com/matzehuels/gridtable/pkg/render"
	"github.com/matzehuels/gridtable/pkg/store"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/tablefile"
)

// TableView is the metadata returned for a stored table.
type TableView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Grobs     int       `json:"grobs"`
	RowNames  []string  `json:"rownames,omitempty"`
	ColNames  []string  `json:"colnames,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func viewOf(t *table.Table, rec store.Record) TableView {
	rows, cols := t.Dim()
	rn, cn := t.Dimnames()
	return TableView{
		ID:        rec.ID,
		Name:      t.Name(),
		Version:   rec.Version,
		Rows:      rows,
		Cols:      cols,
		Grobs:     t.Len(),
		RowNames:  rn,
		ColNames:  cn,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readDefinition decodes a table definition body. The format comes from
// ?format= or the Content-Type, defaulting to JSON.
func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*table.Table, error) {
	format := tablefile.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := tablefile.ParseFormat(q)
		if err != nil {
			return nil, err
		}
		format = f
	} else if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = tablefile.FormatTOML
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return tablefile.Read(bytes.NewReader(body), format)
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	t, err := s.readDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := store.Save(r.Context(), s.store, "", t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("created table", "id", rec.ID, "name", rec.Name)
	w.Header().Set("Location", "/tables/"+rec.ID)
	writeJSON(w, http.StatusCreated, viewOf(t, rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]TableView, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.Table()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		views = append(views, viewOf(t, rec))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, rec, err := store.Load(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(t, rec))
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.readDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	unlock := s.locks.Lock(id)
	defer unlock()
	rec, err := store.Save(r.Context(), s.store, id, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.evict(r, id)
	writeJSON(w, http.StatusOK, viewOf(t, rec))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	unlock := s.locks.Lock(id)
	defer unlock()
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.evict(r, id)
	s.logger.Info("deleted table", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	format := tablefile.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := tablefile.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}
	t, _, err := store.Load(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := tablefile.Marshal(t, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == tablefile.FormatTOML {
		w.Header().Set("Content-Type", "application/toml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(data)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, _, err := store.Load(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, t.Summary())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := render.ParseFormat(cmp.Or(q.Get("format"), string(render.FormatSVG)))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	opts := pipeline.Options{
		Formats:    []string{string(format)},
		Background: q.Get("background"),
		Scope:      cache.TableScope(id),
		Logger:     s.logger,
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				s.writeError(w, r, errors.Validation("invalid %s %q", name, v))
				return
			}
			*dst = f
		}
	}
	if v := q.Get("guides"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.Validation("invalid guides %q", v))
			return
		}
		opts.Guides = b
	}

	t, _, err := store.Load(r.Context(), s.store, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.AllHit))
	_, _ = w.Write(res.Artifacts[string(format)])
}

// evict drops the cached renderings of a replaced or deleted table. A
// failure only costs cache space, so it is logged and not returned.
func (s *Server) evict(r *http.Request, id string) {
	if err := s.runner.Evict(r.Context(), cache.TableScope(id)); err != nil {
		s.logger.Warn("artifact eviction failed", "id", id, "err", err)
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// edit applies fn to the stored table under the id's lock and saves the
// result, either in place or, with ?copy=true, as a new table.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, op string, fn func(*table.Table) (*table.Table, error)) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	asCopy, _ := strconv.ParseBool(r.URL.Query().Get("copy"))

	unlock := s.locks.Lock(id)
	defer unlock()

	t, _, err := store.Load(r.Context(), s.store, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := fn(t)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	target := id
	if asCopy {
		target = ""
	}
	rec, err := store.Save(r.Context(), s.store, target, out)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !asCopy {
		s.evict(r, id)
	}
	s.logger.Info("edited table", "op", op, "id", rec.ID, "version", rec.Version)
	status := http.StatusOK
	if asCopy {
		status = http.StatusCreated
		w.Header().Set("Location", "/tables/"+rec.ID)
	}
	writeJSON(w, status, viewOf(out, rec))
}

func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, "transpose", func(t *table.Table) (*table.Table, error) {
		return t.Transpose(), nil
	})
}

// SubsetRequest selects rows and columns using the [table.ParseSelector]
// syntax. Empty fields keep everything.
type SubsetRequest struct {
	Rows string `json:"rows"`
	Cols string `json:"cols"`
}

func (s *Server) handleSubset(w http.ResponseWriter, r *http.Request) {
	var req SubsetRequest
	if err := decodeBody(w, r, s.maxBody, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := table.ParseSelector(req.Rows)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cols, err := table.ParseSelector(req.Cols)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.edit(w, r, "subset", func(t *table.Table) (*table.Table, error) {
		return t.Subset(rows, cols)
	})
}

// DimnamesRequest replaces row and column names. A null list removes the
// names of that axis.
type DimnamesRequest struct {
	RowNames []string `json:"rownames"`
	ColNames []string `json:"colnames"`
}

func (s *Server) handleDimnames(w http.ResponseWriter, r *http.Request) {
	var req DimnamesRequest
	if err := decodeBody(w, r, s.maxBody, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.edit(w, r, "set dimnames", func(t *table.Table) (*table.Table, error) {
		return t.SetDimnames(req.RowNames, req.ColNames)
	})
}

func (s *Server) handleTrim(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, "trim", func(t *table.Table) (*table.Table, error) {
		return t.Trim(), nil
	})
}

func (s *Server) handleNormalizeZ(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, "normalize z", func(t *table.Table) (*table.Table, error) {
		return t.NormalizeZ(), nil
	})
}
