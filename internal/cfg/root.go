// Package cfg builds the ryt command tree.
package cfg

import (
	"context"
	"io"
	"strings"

	"ryt/internal/app"
	"ryt/internal/domain/consts"
	"ryt/internal/domain/keys"
	"ryt/internal/domain/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Env holds the process streams a command runs against.
type Env struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// session is the state shared by one command tree.
type session struct {
	v   *viper.Viper
	env Env
	app *app.App

	// skip is set when yt-dlp is unavailable, every command then returns cleanly
	skip bool
}

// Execute runs ryt with args.
func Execute(ctx context.Context, args []string, env Env) error {
	s := &session{
		v:   viper.New(),
		env: env,
	}
	s.v.SetEnvPrefix(consts.EnvPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	root := s.rootCmd()
	root.SetArgs(args)
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	defer s.close()
	return root.ExecuteContext(ctx)
}

// rootCmd builds the command tree.
func (s *session) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           consts.ProgramName,
		Short:         "ryt downloads videos, playlists and audio through yt-dlp",
		Long:          "ryt wraps yt-dlp with an interactive menu, a progress bar, saved defaults and a download history.\nRun without arguments for the interactive menu.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return s.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			opts, err := downloadOptions(cmd)
			if err != nil {
				return s.app.Report(err)
			}

			if url := s.v.GetString(keys.URL); url != "" {
				return s.app.Report(s.app.HandleDownload(cmd.Context(), []string{url}, opts))
			}
			return s.app.Report(s.app.RunInteractive(cmd.Context()))
		},
	}

	// Persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringP(keys.URL, "u", "", "Download this URL directly instead of opening the menu")
	pf.BoolP(keys.Verbose, "v", false, "Log debug output to stderr")
	pf.String(keys.ConfigFile, "", "Config file path (default is the per-user config directory)")
	pf.String(keys.YtdlpPath, "", "yt-dlp executable to use for this run")
	for _, k := range []string{keys.URL, keys.Verbose, keys.ConfigFile, keys.YtdlpPath} {
		s.v.BindPFlag(k, pf.Lookup(k))
	}

	addDownloadFlags(rootCmd)

	rootCmd.AddCommand(s.downloadCmd())
	rootCmd.AddCommand(s.configCmd())
	rootCmd.AddCommand(s.historyCmd())

	return rootCmd
}

// setup opens the session and checks for yt-dlp.
func (s *session) setup(ctx context.Context) error {
	a, err := app.Setup(ctx, app.Options{
		ConfigFile: s.v.GetString(keys.ConfigFile),
		YtdlpPath:  s.v.GetString(keys.YtdlpPath),
		Verbose:    s.v.GetBool(keys.Verbose),
		In:         s.env.In,
		Out:        s.env.Out,
		LogConsole: s.env.Err,
	})
	if err != nil {
		return err
	}
	s.app = a

	if !a.CheckTool(ctx) {
		s.skip = true
	}
	return nil
}

// close releases the session, if one was opened.
func (s *session) close() {
	if s.app == nil {
		return
	}
	if err := s.app.Close(); err != nil {
		logger.Pl.W("Failed to close history database: %v", err)
	}
}
