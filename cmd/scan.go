package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finsync/reality-lens/internal/model"
)

var (
	scanUser        string
	scanConcurrency int
)

var scanCmd = &cobra.Command{
	Use:   "scan IMAGE...",
	Short: "Analyze one or more product photos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initScanEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		userID := scanUser
		if userID == "" {
			userID = cfg.Profile.DefaultUser
		}

		results := make([]model.AnalysisResult, len(args))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(scanConcurrency)
		for i, path := range args {
			g.Go(func() error {
				imageBytes, err := os.ReadFile(path)
				if err != nil {
					return eris.Wrapf(err, "read image %s", path)
				}
				results[i] = env.Pipeline.Run(gctx, userID, imageBytes)
				zap.L().Info("scan finished",
					zap.String("image", path),
					zap.String("item", results[i].Item),
					zap.String("impact", string(results[i].Impact)))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanUser, "user", "", "user profile to analyze against (default from config)")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 4, "max photos analyzed in parallel")
	rootCmd.AddCommand(scanCmd)
}
