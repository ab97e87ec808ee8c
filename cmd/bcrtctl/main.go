// Command bcrtctl loads a whitespace-separated binary dataset file, runs one
// of the four BCRT tree searchers against it, and prints the resulting tree
// plus search diagnostics as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davecheney/profile"

	"github.com/arborist-go/bcrt/cart"
	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/mapsearch"
	"github.com/arborist-go/bcrt/mcmc"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/smc"
	"github.com/arborist-go/bcrt/tree"
)

var (
	dataFile   = flag.String("data", "", "path to a whitespace-separated binary dataset file (required)")
	features   = flag.Int("features", 0, "number of feature columns D, not counting the trailing label column (required)")
	searcher   = flag.String("searcher", "map", "searcher to run: map, mcmc, smc, or cart")
	outFile    = flag.String("out", "", "file to write JSON result to; empty means stdout")
	runProfile = flag.Bool("profile", false, "write a CPU profile to ./cpu.pprof for the duration of the search")

	alpha = flag.Float64("alpha", 0.95, "CGM split prior alpha")
	beta  = flag.Float64("beta", 0.5, "CGM split prior beta")
	rho0  = flag.Float64("rho0", 2.5, "Beta-Binomial prior rho0")
	rho1  = flag.Float64("rho1", 2.5, "Beta-Binomial prior rho1")
	seed  = flag.Int64("seed", 42, "RNG seed for mcmc and smc")

	numExpansions = flag.Int("num-expansions", -1, "map: subproblem expansion budget, -1 means unbounded")
	timeLimit     = flag.Duration("time-limit", time.Second, "map: wall-clock budget, negative means unbounded")

	numIterations = flag.Int("num-iterations", 10000, "mcmc: chain length")

	numParticles = flag.Int("num-particles", 256, "smc: total particle count")
	numIslands   = flag.Int("num-islands", 4, "smc: island count, must divide num-particles")
	maxSteps     = flag.Int("max-steps", 64, "smc: growth step budget")
	proposal     = flag.String("proposal", "prior", "smc: action proposal, one of prior, empirical, posterior")
	growth       = flag.String("growth", "nodewise", "smc: growth mode, one of nodewise, layerwise")
	resample     = flag.String("resample", "systematic", "smc: resampling scheme, one of multinomial, systematic")
	essThreshold = flag.Float64("ess-threshold", 0.5, "smc: resample when ESS drops at or below this fraction of island size")
	tempering    = flag.Float64("tempering", 1.0, "smc: likelihood-delta tempering factor in [0,1]")

	maxDepth     = flag.Int("max-depth", 6, "cart: maximum tree depth, <= 0 means unbounded")
	maxLeafNodes = flag.Int("max-leaf-nodes", 0, "cart: maximum leaf count, 0 means unbounded")
)

// result is the JSON shape every searcher reports into; fields not produced
// by the chosen searcher are left at their zero value and omitted.
type result struct {
	Searcher              string  `json:"searcher"`
	Tree                  string  `json:"tree"`
	ElapsedSeconds        float64 `json:"elapsed_seconds,omitempty"`
	TimeoutFlag           bool    `json:"timeout,omitempty"`
	LowerBound            float64 `json:"lower_bound,omitempty"`
	UpperBound            float64 `json:"upper_bound,omitempty"`
	LogPosterior          float64 `json:"log_posterior,omitempty"`
	LogMarginalLikelihood float64 `json:"log_marginal_likelihood,omitempty"`
}

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()

	if *dataFile == "" || *features <= 0 {
		fmt.Fprintln(os.Stderr, "usage: bcrtctl -data <path> -features <D> [-searcher map|mcmc|smc|cart] ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	f, err := os.Open(*dataFile)
	if err != nil {
		log.Fatalf("open data file: %v", err)
	}
	defer f.Close()

	ds, err := dataset.Load(f, *features)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	hp := scoring.Hyperparams{Alpha: *alpha, Beta: *beta, Rho0: *rho0, Rho1: *rho1}

	res, err := run(context.Background(), ds, hp)
	if err != nil {
		log.Fatalf("search: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *outFile != "" {
		out, err := os.Create(*outFile)
		if err != nil {
			log.Fatalf("create output file: %v", err)
		}
		defer out.Close()
		enc = json.NewEncoder(out)
	}
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func run(ctx context.Context, ds *dataset.Dataset, hp scoring.Hyperparams) (result, error) {
	switch *searcher {
	case "map":
		return runMapSearch(ctx, ds, hp)
	case "mcmc":
		return runMCMC(ctx, ds, hp)
	case "smc":
		return runSMC(ctx, ds, hp)
	case "cart":
		return runCART(ds)
	default:
		return result{}, fmt.Errorf("unknown searcher %q: want map, mcmc, smc, or cart", *searcher)
	}
}

func runMapSearch(ctx context.Context, ds *dataset.Dataset, hp scoring.Hyperparams) (result, error) {
	opts := mapsearch.Options{Hyperparams: hp, NumExpansions: *numExpansions, TimeLimit: *timeLimit}
	r, err := mapsearch.Search(ctx, ds, opts)
	if err != nil {
		return result{}, err
	}
	return result{
		Searcher:       "map",
		Tree:           tree.Serialize(r.Tree),
		ElapsedSeconds: r.ElapsedSeconds,
		TimeoutFlag:    r.TimeoutFlag,
		LowerBound:     r.LB,
		UpperBound:     r.UB,
	}, nil
}

func runMCMC(ctx context.Context, ds *dataset.Dataset, hp scoring.Hyperparams) (result, error) {
	opts := mcmc.Options{Hyperparams: hp, NumIterations: *numIterations, Seed: *seed}
	r, err := mcmc.Search(ctx, ds, opts)
	if err != nil {
		return result{}, err
	}
	return result{Searcher: "mcmc", Tree: tree.Serialize(r.Tree), LogPosterior: r.LogPosterior}, nil
}

func runSMC(ctx context.Context, ds *dataset.Dataset, hp scoring.Hyperparams) (result, error) {
	proposalKind, err := parseProposal(*proposal)
	if err != nil {
		return result{}, err
	}
	growthMode, err := parseGrowth(*growth)
	if err != nil {
		return result{}, err
	}
	resampleScheme, err := parseResample(*resample)
	if err != nil {
		return result{}, err
	}

	opts := smc.Options{
		Hyperparams:  hp,
		NumParticles: *numParticles,
		NumIslands:   *numIslands,
		MaxSteps:     *maxSteps,
		Proposal:     proposalKind,
		Growth:       growthMode,
		Resample:     resampleScheme,
		ESSThreshold: *essThreshold,
		Tempering:    *tempering,
		Seed:         *seed,
	}
	r, err := smc.Search(ctx, ds, opts)
	if err != nil {
		return result{}, err
	}
	return result{
		Searcher:              "smc",
		Tree:                  tree.Serialize(r.Tree),
		LogPosterior:          r.LogPosterior,
		LogMarginalLikelihood: r.LogMarginalLikelihood,
	}, nil
}

func runCART(ds *dataset.Dataset) (result, error) {
	opts := cart.Options{MaxDepth: *maxDepth, MaxLeafNodes: *maxLeafNodes}
	t := cart.Fit(ds, opts)
	return result{
		Searcher:     "cart",
		Tree:         tree.Serialize(t),
		LogPosterior: t.LogPosterior(ds, ds.Full(), scoring.Hyperparams{Alpha: *alpha, Beta: *beta, Rho0: *rho0, Rho1: *rho1}),
	}, nil
}

func parseProposal(s string) (smc.ProposalKind, error) {
	switch s {
	case "prior":
		return smc.ProposalPrior, nil
	case "empirical":
		return smc.ProposalEmpirical, nil
	case "posterior":
		return smc.ProposalPosterior, nil
	default:
		return 0, fmt.Errorf("unknown proposal %q: want prior, empirical, or posterior", s)
	}
}

func parseGrowth(s string) (smc.GrowthMode, error) {
	switch s {
	case "nodewise":
		return smc.GrowthNodewise, nil
	case "layerwise":
		return smc.GrowthLayerwise, nil
	default:
		return 0, fmt.Errorf("unknown growth mode %q: want nodewise or layerwise", s)
	}
}

func parseResample(s string) (smc.ResampleScheme, error) {
	switch s {
	case "multinomial":
		return smc.ResampleMultinomial, nil
	case "systematic":
		return smc.ResampleSystematic, nil
	default:
		return 0, fmt.Errorf("unknown resample scheme %q: want multinomial or systematic", s)
	}
}
