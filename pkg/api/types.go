package api

import (
	"errors"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/paste"
	"github.com/ssargent/pokepack/pkg/storage"
)

// errRequest marks malformed requests (bad ids, oversized bodies, bad query
// parameters).
var errRequest = errors.New("bad request")

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string
	Format  string // default text format for encode and team reads
	MaxBody int64  // request body limit in bytes; 0 means 1 MiB
}

// TeamStore is the persistence the team endpoints need.
type TeamStore interface {
	Create(records []codec.Packed) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) (*codec.Envelope, error)
	Delete(id ksuid.KSUID) error
	List(limit int) ([]storage.Team, error)
	FindBySpecies(code uint16) ([]storage.Team, error)
	Count() (int, error)
}

// EncodeResponse is returned by POST /encode.
type EncodeResponse struct {
	Format  string  `json:"format"`
	Records int     `json:"records"`
	Bytes   int     `json:"bytes"`
	Text    string  `json:"text"`
	Ratio   float64 `json:"ratio"`
}

// DecodeResponse is returned by POST /decode.
type DecodeResponse struct {
	Format string    `json:"format"`
	Paste  string    `json:"paste"`
	Sets   []SetView `json:"sets"`
}

// SetView is the JSON form of a decoded set.
type SetView struct {
	Species string         `json:"species"`
	Gender  string         `json:"gender,omitempty"`
	Item    string         `json:"item,omitempty"`
	Ability string         `json:"ability,omitempty"`
	Level   int            `json:"level,omitempty"`
	Shiny   bool           `json:"shiny,omitempty"`
	Tera    string         `json:"tera,omitempty"`
	EVs     map[string]int `json:"evs"`
	Nature  string         `json:"nature,omitempty"`
	IVs     map[string]int `json:"ivs"`
	Moves   []string       `json:"moves"`
}

func newSetView(s paste.Set) SetView {
	v := SetView{
		Species: s.Species,
		Gender:  s.Gender,
		Item:    s.Item,
		Ability: s.Ability,
		Level:   s.Level,
		Shiny:   s.Shiny,
		Tera:    s.Tera,
		EVs:     make(map[string]int, paste.NumStats),
		Nature:  s.Nature,
		IVs:     make(map[string]int, paste.NumStats),
		Moves:   s.Moves,
	}
	for st := paste.Stat(0); st < paste.NumStats; st++ {
		v.EVs[st.String()] = s.EVs.Get(st)
		v.IVs[st.String()] = s.IVs.Get(st)
	}
	if v.Moves == nil {
		v.Moves = []string{}
	}
	return v
}

// TeamResponse is returned by the team endpoints.
type TeamResponse struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Records int       `json:"records"`
	Format  string    `json:"format,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// DexEntry is one vocabulary entry.
type DexEntry struct {
	Category string `json:"category"`
	Code     int    `json:"code"`
	Name     string `json:"name"`
}
