package cfg

import (
	"fmt"
	"strconv"
	"time"

	"ryt/internal/app"
	"ryt/internal/domain/errconsts"
	"ryt/internal/domain/keys"
	"ryt/internal/repo"

	"github.com/spf13/cobra"
)

// historyCmd lists, exports and retries recorded downloads.
func (s *session) historyCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show download history",
		Long:  "List recorded downloads, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			filter, err := s.historyFilter()
			if err != nil {
				return s.app.Report(err)
			}
			return s.app.Report(s.app.HandleHistory(cmd.Context(), filter))
		},
	}

	pf := historyCmd.PersistentFlags()
	pf.Uint64(keys.HistoryLimit, 0, "Show at most this many entries (0 shows all)")
	pf.String(keys.HistorySince, "", "Only entries started since a date (\"2024-05-01\", \"May 1 2024\") or a duration back from now (\"48h\")")
	s.v.BindPFlag(keys.HistoryLimit, pf.Lookup(keys.HistoryLimit))
	s.v.BindPFlag(keys.HistorySince, pf.Lookup(keys.HistorySince))

	historyCmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			filter, err := s.historyFilter()
			if err != nil {
				return s.app.Report(err)
			}
			return s.app.Report(s.app.HandleHistoryExport(cmd.Context(), args[0], filter))
		},
	})

	historyCmd.AddCommand(&cobra.Command{
		Use:   "retry <id>",
		Short: "Download a recorded entry again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return s.app.Report(fmt.Errorf("%w: history id must be a positive number, got %q", errconsts.ErrInvalidSetting, args[0]))
			}
			return s.app.Report(s.app.HandleHistoryRetry(cmd.Context(), id))
		},
	})

	return historyCmd
}

// historyFilter reads --limit and --since.
func (s *session) historyFilter() (repo.HistoryFilter, error) {
	since, err := app.ParseSince(s.v.GetString(keys.HistorySince), time.Now())
	if err != nil {
		return repo.HistoryFilter{}, fmt.Errorf("%w: %w", errconsts.ErrInvalidSetting, err)
	}
	return repo.HistoryFilter{
		Since: since,
		Limit: s.v.GetUint64(keys.HistoryLimit),
	}, nil
}
