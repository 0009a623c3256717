package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/codesearch/config"
	"github.com/jonwraymond/codesearch/embedder"
	"github.com/jonwraymond/codesearch/index"
	"github.com/jonwraymond/codesearch/query"
	"github.com/jonwraymond/codesearch/server"
	"github.com/jonwraymond/codesearch/walker"
)

type engine struct {
	cfg      config.Config
	idx      *index.InMemoryIndex
	pipeline *query.Pipeline
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	var configPath string
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "codesearch",
		Short:         "Semantic code search over a local repository",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "codesearch.db", "path to the index snapshot")

	rootCmd.AddCommand(newIndexCmd(logger, &configPath, &dbPath))
	rootCmd.AddCommand(newSearchCmd(logger, &configPath, &dbPath))
	rootCmd.AddCommand(newServeCmd(logger, &configPath, &dbPath))

	return rootCmd
}

func newIndexCmd(logger *zap.Logger, configPath, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "index [path]",
		Short: "index a source tree and save a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			units, err := walker.Walk(args[0], walker.Options{
				MaxFileSize: eng.cfg.Walker.MaxFileSize,
				IgnoreDirs:  eng.cfg.Walker.IgnoreDirs,
			})
			if err != nil {
				return err
			}

			result := eng.idx.IndexBatch(cmd.Context(), units)
			for _, fail := range result.Failed {
				logger.Warn("skipped unit", zap.String("unit", fail.ID), zap.Error(fail.Err))
			}

			if err := eng.idx.SaveSnapshot(*dbPath); err != nil {
				return err
			}

			logger.Info("index built",
				zap.Int("indexed", result.Indexed),
				zap.Int("failed", len(result.Failed)),
				zap.String("snapshot", *dbPath))
			return nil
		},
	}
}

func newSearchCmd(logger *zap.Logger, configPath, dbPath *string) *cobra.Command {
	var limit int
	var threshold float64
	var mode string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "search the indexed snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(*configPath)
			if err != nil {
				return err
			}
			if err := eng.idx.LoadSnapshot(*dbPath); err != nil {
				return fmt.Errorf("load index (run `codesearch index` first): %w", err)
			}

			cleaned, err := sanitizeQuery(args[0], eng.cfg.MaxQueryLength)
			if err != nil {
				return err
			}

			// Config defaults apply only when a flag is omitted. Explicit
			// values, valid or not, go to the pipeline's validator.
			if !cmd.Flags().Changed("limit") {
				limit = eng.cfg.DefaultLimit
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = eng.cfg.DefaultThreshold
			}

			resp, err := eng.pipeline.SearchMode(cmd.Context(), cleaned, query.Mode(mode), limit, threshold)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			renderResults(os.Stdout, resp)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity score in [0,1]")
	cmd.Flags().StringVar(&mode, "mode", string(query.ModeSemantic), "scoring mode: semantic, lexical, or hybrid")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw response as JSON")

	return cmd
}

func newServeCmd(logger *zap.Logger, configPath, dbPath *string) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the semantic_search tool over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(*configPath)
			if err != nil {
				return err
			}
			if err := eng.idx.LoadSnapshot(*dbPath); err != nil {
				logger.Warn("no snapshot loaded; searches will report not indexed",
					zap.String("snapshot", *dbPath), zap.Error(err))
			}

			srv, err := server.New(server.Config{
				Pipeline:         eng.pipeline,
				Info:             server.Info{Name: eng.cfg.Server.Name, Version: eng.cfg.Server.Version},
				DefaultLimit:     eng.cfg.DefaultLimit,
				DefaultThreshold: eng.cfg.DefaultThreshold,
				Logger:           logger,
			})
			if err != nil {
				return err
			}

			if httpAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/", server.ServeHTTP(srv))
				mux.Handle("/sse", server.ServeSSE(srv))
				logger.Info("serving MCP over HTTP", zap.String("addr", httpAddr))
				return http.ListenAndServe(httpAddr, mux)
			}

			logger.Info("serving MCP over stdio")
			return server.ServeStdio(context.Background(), srv)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve over HTTP on this address instead of stdio")

	return cmd
}

func buildEngine(configPath string) (*engine, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	emb := embedder.NewHashEmbedder(cfg.Dimension)
	idx, err := index.NewInMemoryIndex(index.Options{Embedder: emb})
	if err != nil {
		return nil, err
	}

	pipeline, err := query.NewPipeline(idx, emb, query.Options{
		MaxLimit:       cfg.MaxLimit,
		MaxQueryLength: cfg.MaxQueryLength,
		ContextRadius:  cfg.ContextRadius,
		HybridAlpha:    cfg.HybridAlpha,
	})
	if err != nil {
		return nil, err
	}

	return &engine{cfg: cfg, idx: idx, pipeline: pipeline}, nil
}
