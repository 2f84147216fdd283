package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/pack"
	"github.com/ssargent/pokepack/pkg/paste"
	"github.com/ssargent/pokepack/pkg/storage"
	"github.com/ssargent/pokepack/pkg/transform"
)

const formatPaste = "paste"

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode godoc
//
//	@Summary		Pack a team paste
//	@Tags			codec
//	@Accept			plain
//	@Produce		json
//	@Param			format	query		string	false	"hex or base64"
//	@Param			body	body		string	true	"Team paste"
//	@Success		200		{object}	EncodeResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/encode [post]
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	format, err := s.textFormat(r, false)
	if err != nil {
		sendFailure(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		sendFailure(w, err)
		return
	}

	packed, err := s.packer.PasteToRecords(body)
	s.metrics.RecordCodecOperation("encode", err == nil, len(packed))
	if err != nil {
		sendFailure(w, err)
		return
	}

	text := transform.Encode(packed, format)
	sendSuccess(w, EncodeResponse{
		Format:  format.String(),
		Records: len(packed),
		Bytes:   len(packed) * codec.PackedSize,
		Text:    text,
		Ratio:   pack.Ratio(body, text),
	})
}

// handleDecode godoc
//
//	@Summary		Unpack encoded records
//	@Tags			codec
//	@Accept			plain
//	@Produce		json
//	@Param			format	query		string	false	"hex or base64; detected when omitted"
//	@Param			body	body		string	true	"Encoded records"
//	@Success		200		{object}	DecodeResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/decode [post]
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	format, err := s.textFormat(r, true)
	if err != nil {
		sendFailure(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		sendFailure(w, err)
		return
	}

	var packed []codec.Packed
	if format == "" {
		packed, format, err = transform.Detect(body)
	} else {
		packed, err = transform.Decode(body, format)
	}
	var sets []paste.Set
	if err == nil {
		sets, err = s.packer.RecordsToSets(packed)
	}
	s.metrics.RecordCodecOperation("decode", err == nil, len(packed))
	if err != nil {
		sendFailure(w, err)
		return
	}

	views := make([]SetView, len(sets))
	for i, set := range sets {
		views[i] = newSetView(set)
	}
	sendSuccess(w, DecodeResponse{
		Format: format.String(),
		Paste:  paste.Format(sets),
		Sets:   views,
	})
}

// handleCreateTeam godoc
//
//	@Summary		Store a team paste
//	@Tags			teams
//	@Accept			plain
//	@Produce		json
//	@Param			body	body		string	true	"Team paste"
//	@Success		200		{object}	TeamResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/teams [post]
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendFailure(w, err)
		return
	}

	packed, err := s.packer.PasteToRecords(body)
	s.metrics.RecordCodecOperation("encode", err == nil, len(packed))
	if err != nil {
		sendFailure(w, err)
		return
	}

	id, err := s.store.Create(packed)
	if err != nil {
		s.logger.Error("failed to store team", zap.Error(err))
		sendFailure(w, err)
		return
	}
	s.refreshTeamCount()

	e, err := s.store.Read(id)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendSuccess(w, TeamResponse{ID: id.String(), Created: e.Created(), Records: int(e.Count)})
}

// handleListTeams godoc
//
//	@Summary		List stored teams
//	@Tags			teams
//	@Produce		json
//	@Param			limit	query		int		false	"Maximum number of teams"
//	@Param			species	query		string	false	"Only teams containing this species"
//	@Success		200		{array}		TeamResponse
//	@Security		ApiKeyAuth
//	@Router			/teams [get]
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendFailure(w, fmt.Errorf("%w: invalid limit %q", errRequest, v))
			return
		}
		limit = n
	}

	var teams []storage.Team
	var err error
	if name := r.URL.Query().Get("species"); name != "" {
		code, ok := s.packer.Dex().Code(dex.Species, name)
		if !ok || code == 0 {
			sendFailure(w, fmt.Errorf("%w: unknown species %q", errRequest, name))
			return
		}
		teams, err = s.store.FindBySpecies(uint16(code))
		if limit > 0 && len(teams) > limit {
			teams = teams[:limit]
		}
	} else {
		teams, err = s.store.List(limit)
	}
	if err != nil {
		sendFailure(w, err)
		return
	}

	out := make([]TeamResponse, len(teams))
	for i, t := range teams {
		out[i] = TeamResponse{ID: t.ID.String(), Created: t.Created, Records: t.Records}
	}
	sendSuccess(w, out)
}

// handleGetTeam godoc
//
//	@Summary		Read a stored team
//	@Tags			teams
//	@Produce		json
//	@Param			id		path		string	true	"Team id"
//	@Param			format	query		string	false	"paste, hex or base64"
//	@Success		200		{object}	TeamResponse
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/teams/{id} [get]
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendFailure(w, fmt.Errorf("%w: %v", errRequest, err))
		return
	}

	e, err := s.store.Read(id)
	if err != nil {
		sendFailure(w, err)
		return
	}

	resp := TeamResponse{ID: id.String(), Created: e.Created(), Records: int(e.Count)}
	switch format := r.URL.Query().Get("format"); format {
	case "", formatPaste:
		text, err := s.packer.RecordsToPaste(e.Records)
		s.metrics.RecordCodecOperation("decode", err == nil, len(e.Records))
		if err != nil {
			sendFailure(w, err)
			return
		}
		resp.Format, resp.Text = formatPaste, text
	default:
		f, err := transform.ParseFormat(format)
		if err != nil {
			sendFailure(w, err)
			return
		}
		resp.Format, resp.Text = f.String(), transform.Encode(e.Records, f)
	}
	sendSuccess(w, resp)
}

// handleDeleteTeam godoc
//
//	@Summary		Delete a stored team
//	@Tags			teams
//	@Produce		json
//	@Param			id	path		string	true	"Team id"
//	@Success		200	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/teams/{id} [delete]
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendFailure(w, fmt.Errorf("%w: %v", errRequest, err))
		return
	}

	if err := s.store.Delete(id); err != nil {
		sendFailure(w, err)
		return
	}
	s.refreshTeamCount()

	sendSuccess(w, map[string]string{"message": "Team deleted successfully"})
}

// handleDexList godoc
//
//	@Summary		List a vocabulary table
//	@Tags			dex
//	@Produce		json
//	@Param			category	path		string	true	"Category"
//	@Success		200			{array}		DexEntry
//	@Security		ApiKeyAuth
//	@Router			/dex/{category} [get]
func (s *Server) handleDexList(w http.ResponseWriter, r *http.Request) {
	cat, err := dex.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		sendFailure(w, fmt.Errorf("%w: %v", errRequest, err))
		return
	}

	table := s.packer.Dex().Table(cat)
	out := make([]DexEntry, 0, len(table))
	for code, name := range table {
		if name == "" {
			continue
		}
		out = append(out, DexEntry{Category: cat.String(), Code: code, Name: name})
	}
	sendSuccess(w, out)
}

// handleDexLookup godoc
//
//	@Summary		Look up a name or code
//	@Tags			dex
//	@Produce		json
//	@Param			category	path		string	true	"Category"
//	@Param			name		path		string	true	"Name or numeric code"
//	@Success		200			{object}	DexEntry
//	@Failure		404			{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/dex/{category}/{name} [get]
func (s *Server) handleDexLookup(w http.ResponseWriter, r *http.Request) {
	cat, err := dex.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		sendFailure(w, fmt.Errorf("%w: %v", errRequest, err))
		return
	}
	key := chi.URLParam(r, "name")
	d := s.packer.Dex()

	if code, err := strconv.Atoi(key); err == nil {
		name, err := d.Name(cat, code)
		if err != nil {
			sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		sendSuccess(w, DexEntry{Category: cat.String(), Code: code, Name: name})
		return
	}

	code, ok := d.Code(cat, key)
	if !ok {
		sendError(w, fmt.Sprintf("%s %q not found", cat, key), http.StatusNotFound)
		return
	}
	name, _ := d.Name(cat, code)
	sendSuccess(w, DexEntry{Category: cat.String(), Code: code, Name: name})
}

// textFormat reads the format query parameter. Without one it falls back to
// the configured default, or to detection when detect is set.
func (s *Server) textFormat(r *http.Request, detect bool) (transform.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		if detect {
			return "", nil
		}
		v = s.config.Format
		if v == "" {
			return transform.Base64, nil
		}
	}
	return transform.ParseFormat(v)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBody))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read request body: %v", errRequest, err)
	}
	return string(data), nil
}
