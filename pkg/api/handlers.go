package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/mapcode/pkg/alphabet"
	"github.com/ssargent/mapcode/pkg/batch"
	"github.com/ssargent/mapcode/pkg/cache"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
	"github.com/ssargent/mapcode/pkg/territory"
)

// maxBatchBody bounds the size of a POST /batch body.
const maxBatchBody = 8 << 20

// Server holds the API server state
type Server struct {
	engine  *mapcode.Engine
	batches *batch.Runner
	cache   cache.Cache
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server. batches may be nil, which disables
// the batch endpoints; a nil cache is replaced by a no-op cache.
func NewServer(engine *mapcode.Engine, batches *batch.Runner, c cache.Cache, config ServerConfig, metrics *Metrics) *Server {
	if c == nil {
		c = cache.Noop{}
	}
	tbl := engine.Table()
	metrics.SetDatasetSize(tbl.Count(), tbl.RecordCount())
	if batches != nil {
		batches.OnDone = func(job *storage.Job) {
			metrics.RecordBatchJob(string(job.Status), len(job.Points))
		}
	}
	return &Server{
		engine:  engine,
		batches: batches,
		cache:   c,
		config:  config,
		metrics: metrics,
	}
}

// errBadParam marks a malformed query parameter.
var errBadParam = errors.New("bad parameter")

func floatParam(r *http.Request, name string) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, errors.Wrapf(errBadParam, "%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(errBadParam, "%s: %q is not a number", name, s)
	}
	return v, nil
}

func (s *Server) territoryParam(r *http.Request, name string) (territory.ID, error) {
	iso := r.URL.Query().Get(name)
	if iso == "" {
		return territory.None, nil
	}
	return s.engine.ResolveTerritory(iso, territory.None)
}

// toRoman converts input written in another alphabet.
func toRoman(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] >= utf8.RuneSelf {
			return alphabet.ToRoman(code)
		}
	}
	return code
}

// handleHealth godoc
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
//	@Security	ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	tbl := s.engine.Table()
	sendSuccess(w, HealthResponse{Status: "healthy", Territories: tbl.Count(), Records: tbl.RecordCount()})
}

// handleEncode godoc
//
//	@Summary	Encode a coordinate
//	@Tags		mapcode
//	@Produce	json
//	@Param		lat			query		number	true	"Latitude"
//	@Param		lon			query		number	true	"Longitude"
//	@Param		territory	query		string	false	"Territory"
//	@Param		precision	query		int		false	"Extension characters, 0 to 8"
//	@Param		alphabet	query		string	false	"Output alphabet"
//	@Param		shortest	query		bool	false	"Only the shortest code"
//	@Success	200			{object}	EncodeResponse
//	@Failure	400			{object}	APIResponse
//	@Failure	404			{object}	APIResponse
//	@Router		/encode [get]
//	@Security	ApiKeyAuth
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	lat, err := floatParam(r, "lat")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := floatParam(r, "lon")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	precision := 0
	if p := q.Get("precision"); p != "" {
		precision, err = strconv.Atoi(p)
		if err != nil || precision < 0 || precision > 8 {
			sendError(w, "precision must be 0 to 8", http.StatusBadRequest)
			return
		}
	}
	script := alphabet.Roman
	if a := q.Get("alphabet"); a != "" {
		if script, err = alphabet.Parse(a); err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	shortest, _ := strconv.ParseBool(q.Get("shortest"))
	t, err := s.territoryParam(r, "territory")
	if err != nil {
		sendErr(w, r, err)
		return
	}

	var codes mapcode.Mapcodes
	if shortest {
		res, ok, encErr := s.engine.EncodeShortest(lat, lon, t, precision)
		if ok {
			codes = mapcode.Mapcodes{res}
		}
		err = encErr
	} else {
		codes, err = s.engine.EncodeAll(lat, lon, t, precision)
	}
	s.metrics.RecordEngineOperation("encode", err == nil, time.Since(start))
	if err != nil {
		sendErr(w, r, err)
		return
	}

	resp := EncodeResponse{
		Lat:            lat,
		Lon:            lon,
		Precision:      precision,
		MaxErrorMeters: mapcode.MaxErrorInMeters(precision),
		Mapcodes:       make([]Mapcode, 0, len(codes)),
	}
	for _, c := range codes {
		m := Mapcode{Territory: c.TerritoryISO, Code: c.Code, Full: c.String()}
		if script != alphabet.Roman {
			m.Alphabet = c.InAlphabet(script)
		}
		resp.Mapcodes = append(resp.Mapcodes, m)
	}
	sendSuccess(w, resp)
}

// handleDecode godoc
//
//	@Summary	Decode a mapcode
//	@Tags		mapcode
//	@Produce	json
//	@Param		code	query		string	true	"Mapcode, optionally with territory"
//	@Param		context	query		string	false	"Territory for codes without one"
//	@Success	200		{object}	DecodeResponse
//	@Failure	400		{object}	APIResponse
//	@Failure	404		{object}	APIResponse
//	@Failure	422		{object}	APIResponse
//	@Router		/decode [get]
//	@Security	ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	input := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("code")))
	if input == "" {
		sendError(w, "code is required", http.StatusBadRequest)
		return
	}
	ctxISO := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("context")))
	ctxID, err := s.territoryParam(r, "context")
	if err != nil {
		sendErr(w, r, err)
		return
	}

	key := cache.Key(ctxISO, input)
	var resp DecodeResponse
	if s.cache.Get(r.Context(), key, &resp) {
		s.metrics.RecordCacheLookup(true)
		sendSuccess(w, resp)
		return
	}
	s.metrics.RecordCacheLookup(false)

	d, err := s.engine.Decode(input, ctxID)
	s.metrics.RecordEngineOperation("decode", err == nil, time.Since(start))
	if err != nil {
		sendErr(w, r, err)
		return
	}
	iso, err := s.engine.TerritoryIsoName(d.Territory, false)
	if err != nil {
		sendErr(w, r, err)
		return
	}
	resp = DecodeResponse{Lat: d.Lat, Lon: d.Lon, Territory: iso, Code: d.Elements.String()}
	s.cache.Set(r.Context(), key, resp)
	sendSuccess(w, resp)
}

// handleParse godoc
//
//	@Summary	Check the format of a mapcode
//	@Tags		mapcode
//	@Produce	json
//	@Param		code	query		string	true	"Mapcode"
//	@Success	200		{object}	ParseResponse
//	@Router		/parse [get]
//	@Security	ApiKeyAuth
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	el, err := mapcode.ParseFormat(toRoman(r.URL.Query().Get("code")))
	s.metrics.RecordEngineOperation("parse", err == nil, time.Since(start))
	if err != nil {
		sendSuccess(w, ParseResponse{
			Incomplete: errors.Is(err, mapcode.ErrIncomplete),
			Error:      err.Error(),
		})
		return
	}
	sendSuccess(w, ParseResponse{
		Valid:     true,
		Territory: el.TerritoryISO,
		Mapcode:   el.ProperMapcode,
		Extension: el.Extension,
	})
}

// handleTerritory godoc
//
//	@Summary	Resolve a territory code
//	@Tags		territory
//	@Produce	json
//	@Param		iso		path		string	true	"Territory code, e.g. NLD, US-CA or CA"
//	@Param		context	query		string	false	"Territory that disambiguates subdivision codes"
//	@Success	200		{object}	TerritoryResponse
//	@Failure	404		{object}	APIResponse
//	@Router		/territories/{iso} [get]
//	@Security	ApiKeyAuth
func (s *Server) handleTerritory(w http.ResponseWriter, r *http.Request) {
	ctxID, err := s.territoryParam(r, "context")
	if err != nil {
		sendErr(w, r, err)
		return
	}
	id, err := s.engine.ResolveTerritory(chi.URLParam(r, "iso"), ctxID)
	if err != nil {
		sendErr(w, r, err)
		return
	}
	tbl := s.engine.Table()
	ter, err := tbl.Territory(id)
	if err != nil {
		sendErr(w, r, err)
		return
	}
	long, _ := tbl.IsoName(id, false)
	short, _ := tbl.IsoName(id, true)
	resp := TerritoryResponse{
		ID:              int(id),
		Code:            ter.Code,
		IsoName:         long,
		ShortName:       short,
		Name:            ter.Name,
		Aliases:         ter.Aliases,
		HasSubdivisions: tbl.HasSubdivisions(id),
		FirstRecord:     ter.FirstRecord,
		LastRecord:      ter.LastRecord,
	}
	if ter.Parent != territory.None {
		resp.Parent = tbl.Code(ter.Parent)
	}
	sendSuccess(w, resp)
}

// handleBorders godoc
//
//	@Summary	Report whether a coordinate is near several borders
//	@Tags		territory
//	@Produce	json
//	@Param		lat			query		number	true	"Latitude"
//	@Param		lon			query		number	true	"Longitude"
//	@Param		territory	query		string	true	"Territory"
//	@Success	200			{object}	BordersResponse
//	@Router		/borders [get]
//	@Security	ApiKeyAuth
func (s *Server) handleBorders(w http.ResponseWriter, r *http.Request) {
	lat, err := floatParam(r, "lat")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := floatParam(r, "lon")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("territory") == "" {
		sendError(w, "territory is required", http.StatusBadRequest)
		return
	}
	t, err := s.territoryParam(r, "territory")
	if err != nil {
		sendErr(w, r, err)
		return
	}
	iso, _ := s.engine.TerritoryIsoName(t, false)
	sendSuccess(w, BordersResponse{
		Lat:                   lat,
		Lon:                   lon,
		Territory:             iso,
		MultipleBordersNearby: s.engine.MultipleBordersNearby(lat, lon, t),
	})
}

// handleBatchCreate godoc
//
//	@Summary	Start a batch encode
//	@Tags		batch
//	@Accept		json
//	@Produce	json
//	@Param		body	body		BatchRequest	true	"Points to encode"
//	@Success	202		{object}	BatchAccepted
//	@Failure	400		{object}	APIResponse
//	@Failure	413		{object}	APIResponse
//	@Router		/batch [post]
//	@Security	ApiKeyAuth
func (s *Server) handleBatchCreate(w http.ResponseWriter, r *http.Request) {
	if s.batches == nil {
		sendError(w, "batch jobs are disabled", http.StatusServiceUnavailable)
		return
	}
	var req BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		sendError(w, "invalid JSON in request body", http.StatusBadRequest)
		return
	}
	if len(req.Points) == 0 {
		sendError(w, "points are required", http.StatusBadRequest)
		return
	}
	if req.Precision < 0 || req.Precision > 8 {
		sendError(w, "precision must be 0 to 8", http.StatusBadRequest)
		return
	}
	id, err := s.batches.Submit(r.Context(), batch.Request{
		Points:    req.Points,
		Territory: req.Territory,
		Precision: req.Precision,
		Shortest:  req.Shortest,
	})
	if err != nil {
		sendErr(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/batch/"+id.String())
	sendJSON(w, BatchAccepted{ID: id.String(), Status: storage.StatusPending}, http.StatusAccepted)
}

// handleBatchGet godoc
//
//	@Summary	Get a batch job
//	@Tags		batch
//	@Produce	json
//	@Param		id	path		string	true	"Job id"
//	@Success	200	{object}	storage.Job
//	@Failure	404	{object}	APIResponse
//	@Router		/batch/{id} [get]
//	@Security	ApiKeyAuth
func (s *Server) handleBatchGet(w http.ResponseWriter, r *http.Request) {
	if s.batches == nil {
		sendError(w, "batch jobs are disabled", http.StatusServiceUnavailable)
		return
	}
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "invalid job id", http.StatusBadRequest)
		return
	}
	job, err := s.batches.Jobs().Read(id)
	if err != nil {
		sendErr(w, r, err)
		return
	}
	sendSuccess(w, job)
}

// handleBatchList godoc
//
//	@Summary	List batch jobs, newest first
//	@Tags		batch
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of jobs"
//	@Success	200		{array}		storage.Job
//	@Router		/batch [get]
//	@Security	ApiKeyAuth
func (s *Server) handleBatchList(w http.ResponseWriter, r *http.Request) {
	if s.batches == nil {
		sendError(w, "batch jobs are disabled", http.StatusServiceUnavailable)
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			sendError(w, "limit must be a non-negative number", http.StatusBadRequest)
			return
		}
		limit = n
	}
	jobs, err := s.batches.Jobs().List(limit)
	if err != nil {
		sendErr(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []*storage.Job{}
	}
	sendSuccess(w, jobs)
}
