package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const githubReleasesAPI = "https://api.github.com/repos/zjrosen/contactus/releases/latest"

// releasesURL is where the latest release is looked up. Overridden in tests.
var releasesURL = githubReleasesAPI

// httpClient is the HTTP client used to fetch release info.
// It can be overridden in tests.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// getVersion returns the running version. It can be overridden in tests.
var getVersion = func() string {
	return version
}

var checkLatest bool

// githubRelease represents the GitHub API response for a release.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the contactus version",
	Long: `Print the contactus version.

With --check, also ask GitHub for the latest release and report whether a
newer one is available.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	current := getVersion()
	_, _ = fmt.Fprintf(out, "contactus %s\n", current)
	if !checkLatest {
		return nil
	}

	latest, err := fetchLatestRelease(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking latest release: %w", err)
	}
	if isAlreadyLatest(current, latest) {
		_, _ = fmt.Fprintln(out, "You are on the latest version.")
	} else {
		_, _ = fmt.Fprintf(out, "A newer version is available: %s\n", latest)
	}
	return nil
}

// fetchLatestRelease fetches the latest release tag from GitHub.
func fetchLatestRelease(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

// isAlreadyLatest compares current and latest versions, ignoring a leading
// 'v' and any build suffix such as "-6-gaa951141-dirty".
func isAlreadyLatest(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")

	if idx := strings.Index(current, "-"); idx != -1 {
		current = current[:idx]
	}
	if idx := strings.Index(latest, "-"); idx != -1 {
		latest = latest[:idx]
	}
	return current == latest
}
