// rdn-train fits a Relational Dependency Network on a relational dataset
// and saves the fitted model into a registry.
//
// Usage:
//
//	rdn-train -config engine.yaml -target cancer \
//	    -modes modes.txt -pos pos.txt -neg neg.txt -facts facts.txt \
//	    -trees 10 -db models.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/Munyola/boostsrl/internal/dataset"
	"github.com/Munyola/boostsrl/pkg/boostsrl"
	"github.com/Munyola/boostsrl/pkg/boostsrl/config"
	"github.com/Munyola/boostsrl/pkg/boostsrl/engine/boost"
	"github.com/Munyola/boostsrl/pkg/boostsrl/filesystem"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "engine.yaml", "engine configuration file")
		target     = flag.String("target", "", "target predicate to learn")
		modesPath  = flag.String("modes", "", "predicate modes file")
		posPath    = flag.String("pos", "", "positive examples file")
		negPath    = flag.String("neg", "", "negative examples file")
		factsPath  = flag.String("facts", "", "facts file")
		trees      = flag.Int("trees", 10, "number of boosted trees")
		nodeSize   = flag.Int("node-size", 2, "maximum literals per node")
		maxDepth   = flag.Int("max-depth", 3, "maximum tree depth")
		dbPath     = flag.String("db", "models.db", "model registry path")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bk, db, err := dataset.Load(*modesPath, *posPath, *negPath, *factsPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	layout, err := filesystem.New(cfg.Workspace)
	if err != nil {
		log.Fatalf("create workspace: %v", err)
	}
	defer layout.Cleanup()

	eng := boost.New(cfg.BoostJar, cfg.AUCJar)
	eng.Java = cfg.Java
	eng.Debug = cfg.Debug

	rdn, err := boostsrl.New(boostsrl.Options{
		Background:   bk,
		Target:       *target,
		NEstimators:  *trees,
		NodeSize:     *nodeSize,
		MaxTreeDepth: *maxDepth,
		Engine:       eng,
		Layout:       layout,
	})
	if err != nil {
		log.Fatalf("configure estimator: %v", err)
	}

	ctx := context.Background()
	log.Printf("fitting %q with %d trees (%d pos, %d neg, %d facts)",
		*target, *trees, len(db.Pos), len(db.Neg), len(db.Facts))
	if err := rdn.Fit(ctx, db); err != nil {
		log.Fatalf("fit: %v", err)
	}

	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open registry: %v", err)
	}
	defer store.Close()

	runID, err := rdn.Save(ctx, store)
	if err != nil {
		log.Fatalf("save run: %v", err)
	}
	fmt.Println(runID)
}
