// Package main provides the forge binary: it loads item content, enchants a
// batch of items and prints them as YAML.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/itemforge/internal/config"
	"github.com/cory-johannsen/itemforge/internal/forge"
	"github.com/cory-johannsen/itemforge/internal/game/artifact"
	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/ego"
	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/observability"
	"github.com/cory-johannsen/itemforge/internal/scripting"
	"github.com/cory-johannsen/itemforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	count := flag.Int("count", 10, "number of items to forge")
	depth := flag.Int("depth", -1, "dungeon level; negative draws a level per item")
	modeFlag := flag.String("mode", "", "drop mode flags, e.g. good|great")
	baseID := flag.String("base", "", "base item id; empty picks at random")
	category := flag.String("category", "", "restrict random picks to this category")
	release := flag.String("release", "", "release the claim on this fixed artifact id and exit (postgres store only)")
	flag.Parse()

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "forge")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	mode, err := enchant.ParseMode(*modeFlag)
	if err != nil {
		logger.Fatal("parsing mode", zap.Error(err))
	}
	var cat inventory.Category
	if *category != "" {
		if cat, err = inventory.ParseCategory(*category); err != nil {
			logger.Fatal("parsing category", zap.Error(err))
		}
	}

	// Claim store
	var store artifact.ClaimStore = artifact.NewMemoryClaimStore()
	switch {
	case cfg.Generation.ClaimStore == config.ClaimStorePostgres:
		repo, pool, err := postgres.OpenClaimStore(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("opening claim store", zap.Error(err))
		}
		defer pool.Close()
		if *release != "" {
			if err := repo.Release(ctx, *release); err != nil {
				logger.Fatal("releasing artifact claim", zap.Error(err))
			}
			logger.Info("artifact claim released", zap.String("artifact", *release))
			return
		}
		store = repo
	case *release != "":
		logger.Fatal("-release requires generation.claim_store: postgres")
	default:
		logger.Info("claim store selected", zap.String("store", config.ClaimStoreMemory))
	}

	// Content
	contentStart := time.Now()
	itemDefs, err := inventory.LoadBaseItems(cfg.Content.ItemsDir)
	if err != nil {
		logger.Fatal("loading base items", zap.Error(err))
	}
	items, err := inventory.NewRegistryFromDefs(itemDefs)
	if err != nil {
		logger.Fatal("registering base items", zap.Error(err))
	}
	egoDefs, err := ego.LoadDefs(cfg.Content.EgosDir)
	if err != nil {
		logger.Fatal("loading egos", zap.Error(err))
	}
	egos, err := ego.NewTable(egoDefs, logger)
	if err != nil {
		logger.Fatal("building ego table", zap.Error(err))
	}
	artDefs, err := artifact.LoadDefs(cfg.Content.ArtifactsDir)
	if err != nil {
		logger.Fatal("loading artifacts", zap.Error(err))
	}
	arts, err := artifact.NewRegistry(artDefs)
	if err != nil {
		logger.Fatal("registering artifacts", zap.Error(err))
	}
	if err := arts.Hydrate(ctx, store); err != nil {
		logger.Fatal("hydrating artifact claims", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("base_items", items.Len()),
		zap.Int("egos", egos.Len()),
		zap.Int("artifacts", arts.Len()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	// Randomness
	seed := cfg.Generation.Seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			logger.Fatal("drawing seed", zap.Error(err))
		}
	}
	roller := dice.NewRoller(dice.NewSeededSource(seed), logger)
	logger.Info("random stream seeded", zap.Uint64("seed", seed))

	// Engine
	luck, err := enchant.ParseLuck(cfg.Generation.Luck)
	if err != nil {
		logger.Fatal("parsing luck", zap.Error(err))
	}
	engineCfg := enchant.DefaultConfig()
	engineCfg.ObjGood = cfg.Generation.ObjGood
	engineCfg.ObjGreat = cfg.Generation.ObjGreat
	engineCfg.Luck = luck
	engineCfg.Personality = cfg.Generation.Personality
	engineCfg.PlayerLevel = cfg.Generation.PlayerLevel

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)
	opts := []enchant.Option{enchant.WithRecorder(metrics)}

	if cfg.Content.ScriptsDir != "" {
		scriptMgr := scripting.NewManager(roller, logger)
		defer scriptMgr.Close()
		scoped, err := scriptMgr.LoadTree(cfg.Content.ScriptsDir, cfg.Content.ScriptInstructionLimit)
		if err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		opts = append(opts, enchant.WithHook(scriptMgr))
		logger.Info("scripting enabled",
			zap.String("dir", cfg.Content.ScriptsDir),
			zap.Int("category_vms", len(scoped)),
		)
	}

	engine := enchant.NewEngine(engineCfg, egos, artifact.NewGenerator(arts, artifact.NewRandomGenerator(logger)), logger, opts...)
	f := forge.New(items, engine, logger)

	forged, err := f.Batch(roller, forge.Request{
		Count:    *count,
		Depth:    *depth,
		MaxDepth: cfg.Generation.MaxDepth,
		Mode:     mode,
		BaseID:   *baseID,
		Category: cat,
	})
	if err != nil {
		logger.Fatal("forging batch", zap.Error(err))
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(forged); err != nil {
		logger.Fatal("encoding items", zap.Error(err))
	}
	if err := enc.Close(); err != nil {
		logger.Fatal("flushing output", zap.Error(err))
	}

	flushed, err := arts.Flush(ctx, store)
	if err != nil {
		logger.Error("saving artifact claims", zap.Error(err))
	}

	logMetrics(logger, promReg)
	logger.Info("forge complete",
		zap.Int("items", len(forged)),
		zap.Int("claims_saved", flushed),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// logMetrics writes every non-zero counter series at Info level.
func logMetrics(logger *zap.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("gathering metrics", zap.Error(err))
		return
	}
	var lines []string
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			line := fam.GetName()
			for _, lp := range m.GetLabel() {
				line += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", line, v))
		}
	}
	sort.Strings(lines)
	logger.Info("generation metrics", zap.Strings("series", lines))
}
