package cfg

import (
	"ryt/internal/app"
	"ryt/internal/domain/keys"
	"ryt/internal/models"

	"github.com/spf13/cobra"
)

// downloadCmd downloads one or more URLs.
func (s *session) downloadCmd() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download [url...]",
		Short: "Download URLs",
		Long:  "Download one or more URLs as a single batch. Options not given as flags are asked for.\nUp to max_concurrent_downloads run at the same time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			opts, err := downloadOptions(cmd)
			if err != nil {
				return s.app.Report(err)
			}

			urls := args
			if url := s.v.GetString(keys.URL); url != "" {
				urls = append([]string{url}, urls...)
			}
			return s.app.Report(s.app.HandleDownload(cmd.Context(), urls, opts))
		},
	}

	addDownloadFlags(downloadCmd)
	return downloadCmd
}

// addDownloadFlags adds the flags that skip download prompts.
func addDownloadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(keys.ContentType, "", "Content type: single or playlist")
	f.String(keys.Format, "", "Format: video or audio")
	f.String(keys.Quality, "", "Video quality: "+qualityList()+" (implies --format video)")
}

// downloadOptions parses the download flags of cmd.
func downloadOptions(cmd *cobra.Command) (app.DownloadOptions, error) {
	f := cmd.Flags()
	ct, err := f.GetString(keys.ContentType)
	if err != nil {
		return app.DownloadOptions{}, err
	}
	format, err := f.GetString(keys.Format)
	if err != nil {
		return app.DownloadOptions{}, err
	}
	quality, err := f.GetString(keys.Quality)
	if err != nil {
		return app.DownloadOptions{}, err
	}
	return app.ParseDownloadOptions(ct, format, quality)
}

func qualityList() string {
	var out string
	for i, q := range models.Qualities {
		if i > 0 {
			out += ", "
		}
		out += string(q)
	}
	return out
}
