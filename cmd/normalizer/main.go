// cmd/normalizer/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"template-normalizer/internal/common/aws"
	"template-normalizer/internal/common/config"
	"template-normalizer/internal/common/logger"
	"template-normalizer/internal/common/metrics"
	"template-normalizer/internal/common/observability"
	"template-normalizer/internal/normalize"
	"template-normalizer/internal/template"
	"template-normalizer/pkg/manifest"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to a config file (default: search ./configs)")
		templatePath = flag.String("template", "", "template path or s3:// URI (overrides input.path)")
		outPath      = flag.String("out", "", "output path (overrides output.path; default: rewrite input in place)")
		params       = flag.Bool("params", false, "also default unreferenced asset parameters (CDK templates only)")
		manifestPath = flag.String("manifest", "", "write a build manifest to this path")
	)
	flag.Parse()

	if err := run(*configPath, *templatePath, *outPath, *params, *manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "normalizer: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, templatePath, outPath string, params bool, manifestPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Flags win over config.
	if templatePath != "" {
		cfg.Input.Path = templatePath
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}
	if params {
		cfg.Normalize.Parameters = true
	}
	if manifestPath != "" {
		cfg.Manifest.Enabled = true
		cfg.Manifest.Path = manifestPath
	}
	if cfg.Input.Path == "" {
		return fmt.Errorf("no template given: set input.path or pass -template")
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()
	start := time.Now()

	var fetcher template.Fetcher
	if strings.HasPrefix(cfg.Input.Path, "s3://") {
		s3Client, err := aws.NewS3Client(ctx, cfg.AWS.Region)
		if err != nil {
			recordFailure(ctx, obs, start)
			return err
		}
		fetcher = s3Client
	}

	format := template.Format("")
	if cfg.Input.Format != "" && cfg.Input.Format != "auto" {
		format = template.Format(cfg.Input.Format)
	}

	doc, format, err := template.Load(ctx, cfg.Input.Path, format, fetcher)
	if err != nil {
		recordFailure(ctx, obs, start)
		return err
	}

	log.Info("Loaded template", map[string]interface{}{
		"path":      cfg.Input.Path,
		"format":    string(format),
		"resources": len(template.Resources(doc)),
	})

	normalizer := normalize.New(log)
	normalizer.Normalize(doc, cfg.Normalize.Parameters)

	savePath := cfg.Output.Path
	if savePath == "" {
		savePath = cfg.Input.Path
	}
	if err := template.Save(savePath, doc, format); err != nil {
		recordFailure(ctx, obs, start)
		return err
	}

	if cfg.Manifest.Enabled {
		m := manifest.Generate(doc, normalizer)
		if err := manifest.Write(cfg.Manifest.Path, m); err != nil {
			recordFailure(ctx, obs, start)
			return err
		}
		log.Info("Wrote build manifest", map[string]interface{}{
			"path":      cfg.Manifest.Path,
			"resources": len(m.Resources),
		})
	}

	metrics.TemplatesProcessed.WithLabelValues("success").Inc()
	obs.RecordRun(ctx, "success")
	obs.RecordDuration(ctx, time.Since(start), "success")

	log.Info("Template normalized", map[string]interface{}{
		"output":   savePath,
		"duration": time.Since(start).String(),
	})
	return nil
}

// recordFailure keeps the metric/observability bookkeeping in one
// place for the error paths.
func recordFailure(ctx context.Context, obs *observability.Observability, start time.Time) {
	metrics.TemplatesProcessed.WithLabelValues("failure").Inc()
	obs.RecordRun(ctx, "failure")
	obs.RecordDuration(ctx, time.Since(start), "failure")
}
