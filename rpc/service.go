package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/state"
	"github.com/gorilla/mux"
	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log = logging.MustGetLogger("rpc")

// Reader is the read side of the engine served over HTTP.
type Reader interface {
	Claim(id uint64) (*state.Claim, error)
	VoteOf(claimID uint64, voter common.Address) (*state.Vote, error)
	Settlement(claimID uint64) (*state.SettlementResult, error)
	DueClaims() []uint64
	Pool(identity common.Address) *state.StakePool
	SlashHistory(identity common.Address) []*state.SlashRecord
	LifetimeSlashed(identity common.Address) *big.Int
	EffectiveReputation(identity common.Address) (*big.Int, error)
	Tier(identity common.Address) (reputation.Tier, uint64, error)
	Params() *params.Params
	Paused() bool
}

type Config struct {
	Address           string
	RequestsPerSecond float64
	Burst             int
}

type Service struct {
	reader  Reader
	cfg     Config
	limiter *Limiter
	router  *mux.Router
}

func NewService(reader Reader, cfg Config) *Service {
	s := &Service{
		reader:  reader,
		cfg:     cfg,
		limiter: NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		router:  mux.NewRouter(),
	}

	// due must be registered before the {id} routes
	s.router.HandleFunc("/claims/due", s.GetDueClaims).Methods("GET")
	s.router.HandleFunc("/claims/{id}", s.GetClaim).Methods("GET")
	s.router.HandleFunc("/claims/{id}/votes/{identity}", s.GetVote).Methods("GET")
	s.router.HandleFunc("/claims/{id}/settlement", s.GetSettlement).Methods("GET")
	s.router.HandleFunc("/stakes/{identity}", s.GetStake).Methods("GET")
	s.router.HandleFunc("/slashes/{identity}", s.GetSlashes).Methods("GET")
	s.router.HandleFunc("/reputation/{identity}", s.GetReputation).Methods("GET")
	s.router.HandleFunc("/params", s.GetParams).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.router.Use(instrument, s.limiter.middleware)

	return s
}

func (s *Service) Handler() http.Handler {
	return s.router
}

// Bootstrap serves until ctx is cancelled.
func (s *Service) Bootstrap(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Can't stop rpc server", err)
		}
	}()

	log.Infof("Starting rpc service on %v", s.cfg.Address)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) GetClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	c, err := s.reader.Claim(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, toClaimView(c))
}

func (s *Service) GetVote(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	voter, ok := identity(w, r)
	if !ok {
		return
	}
	if _, err := s.reader.Claim(id); err != nil {
		writeFailure(w, err)
		return
	}
	v, err := s.reader.VoteOf(id, voter)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, toVoteView(v))
}

func (s *Service) GetSettlement(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	if _, err := s.reader.Claim(id); err != nil {
		writeFailure(w, err)
		return
	}
	res, err := s.reader.Settlement(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, toSettlementView(res))
}

func (s *Service) GetDueClaims(w http.ResponseWriter, r *http.Request) {
	due := s.reader.DueClaims()
	if due == nil {
		due = []uint64{}
	}
	writeJSON(w, map[string]interface{}{"claims": due})
}

func (s *Service) GetStake(w http.ResponseWriter, r *http.Request) {
	a, ok := identity(w, r)
	if !ok {
		return
	}
	pool := s.reader.Pool(a)
	writeJSON(w, &StakeView{
		Identity:     a.Hex(),
		TotalStaked:  amount(pool.TotalStaked),
		ActiveStakes: amount(pool.ActiveStakes),
		Available:    amount(pool.Available()),
	})
}

func (s *Service) GetSlashes(w http.ResponseWriter, r *http.Request) {
	a, ok := identity(w, r)
	if !ok {
		return
	}
	writeJSON(w, toSlashesView(a.Hex(), s.reader.LifetimeSlashed(a), s.reader.SlashHistory(a)))
}

func (s *Service) GetReputation(w http.ResponseWriter, r *http.Request) {
	a, ok := identity(w, r)
	if !ok {
		return
	}
	score, err := s.reader.EffectiveReputation(a)
	if err != nil {
		writeFailure(w, err)
		return
	}
	tier, mult, err := s.reader.Tier(a)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, &ReputationView{Identity: a.Hex(), Effective: amount(score), Tier: tier.String(), Multiplier: mult})
}

func (s *Service) GetParams(w http.ResponseWriter, r *http.Request) {
	p := s.reader.Params()
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "protocol is not initialized")
		return
	}
	writeJSON(w, toParamsView(p, s.reader.Paused()))
}

func claimID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed claim id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func identity(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	a, err := common.ParseAddress(mux.Vars(r)["identity"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return common.Address{}, false
	}
	return a, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Can't write response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error("Can't write response", err)
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	switch common.KindOf(err) {
	case common.NotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case common.Validation:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Warningf("Query failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		metrics.RecordHTTPRequest(r.Method, path, rec.status)
	})
}
