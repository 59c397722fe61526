// rdn-predict loads a fitted model from the registry and runs inference
// on a test dataset, printing one label (or probability with -proba) per
// example in class-grouped order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/Munyola/boostsrl/pkg/boostsrl"
	"github.com/Munyola/boostsrl/pkg/boostsrl/config"
	"github.com/Munyola/boostsrl/pkg/boostsrl/database"
	"github.com/Munyola/boostsrl/pkg/boostsrl/engine/boost"
	"github.com/Munyola/boostsrl/pkg/boostsrl/filesystem"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "engine.yaml", "engine configuration file")
		runID      = flag.String("run", "", "registry run id of the fitted model")
		dbPath     = flag.String("db", "models.db", "model registry path")
		posPath    = flag.String("pos", "", "test positive examples file")
		negPath    = flag.String("neg", "", "test negative examples file")
		factsPath  = flag.String("facts", "", "test facts file")
		proba      = flag.Bool("proba", false, "print probabilities instead of labels")
	)
	flag.Parse()

	if *runID == "" {
		log.Fatal("-run is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	testDB, err := database.Load(*posPath, *negPath, *factsPath)
	if err != nil {
		log.Fatalf("load test database: %v", err)
	}

	ctx := context.Background()
	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open registry: %v", err)
	}
	defer store.Close()

	layout, err := filesystem.New(cfg.Workspace)
	if err != nil {
		log.Fatalf("create workspace: %v", err)
	}
	defer layout.Cleanup()

	eng := boost.New(cfg.BoostJar, cfg.AUCJar)
	eng.Java = cfg.Java
	eng.Debug = cfg.Debug

	rdn, err := boostsrl.Load(ctx, store, *runID, eng, layout)
	if err != nil {
		log.Fatalf("load run: %v", err)
	}

	if *proba {
		probs, err := rdn.PredictProba(ctx, testDB)
		if err != nil {
			log.Fatalf("predict_proba: %v", err)
		}
		for _, p := range probs {
			fmt.Printf("%.6f\n", p)
		}
		return
	}

	labels, err := rdn.Predict(ctx, testDB)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	log.Printf("threshold = %g", rdn.Threshold())
	for _, l := range labels {
		fmt.Println(l)
	}
}
