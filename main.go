// Command dymo-install downloads the dymo-code binary for the current
// platform, installs it into a per-user directory, and makes sure that
// directory is on the PATH. It is the payload behind the one-line
// curl | sh bootstrap, so it favors completing the install over strictness:
// when every download source is exhausted it walks the user through a
// manual install instead of failing outright.
package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TPEOficial/dymo-code/internal/config"
	"github.com/TPEOficial/dymo-code/internal/fallback"
	"github.com/TPEOficial/dymo-code/internal/fetch"
	gh "github.com/TPEOficial/dymo-code/internal/host/github"
	"github.com/TPEOficial/dymo-code/internal/install"
	"github.com/TPEOficial/dymo-code/internal/platform"
	"github.com/TPEOficial/dymo-code/internal/release"
	"github.com/TPEOficial/dymo-code/internal/shellpath"
	"github.com/TPEOficial/dymo-code/internal/source"
	"github.com/TPEOficial/dymo-code/pkg/update"
)

// version is stamped by the release build (-ldflags "-X main.version=...").
var version = "dev"

//go:embed docs/quickstart.txt
var quickstart string

const (
	exitOK = 0
	// exitFatal covers unsupported platforms and filesystem failures.
	exitFatal = 1
	// exitManual means every download source was exhausted and the user
	// was handed manual install instructions instead.
	exitManual = 2
)

// errManualCompletion marks a run that ended in the interactive fallback.
// It is not a failure of the fallback itself.
var errManualCompletion = errors.New("manual completion required")

// stdin is swappable so tests can script the interactive fallback.
var stdin io.Reader = os.Stdin

// openURL overrides the fallback's browser launcher. Nil means the
// platform default; tests stub it so no browser is spawned.
var openURL func(string) error

type options struct {
	tag        string
	installDir string
	configPath string
	ifNeeded   bool
	assumeYes  bool
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "dymo-install",
		Short:         "Install the dymo-code CLI for the current user",
		Long:          strings.TrimSpace(quickstart),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(opts, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&opts.tag, "tag", "", "release tag to install (default: latest)")
	cmd.Flags().StringVar(&opts.installDir, "install-dir", "", "directory to install into (default: ~/.local/bin)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to an installer config overlay (JSON)")
	cmd.Flags().BoolVar(&opts.ifNeeded, "if-needed", false, "skip the download when the installed version is already current")
	cmd.Flags().BoolVarP(&opts.assumeYes, "yes", "y", false, "never prompt; assume confirmation")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errManualCompletion) {
			return exitManual
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFatal
	}
	return exitOK
}

func runInstall(opts *options, stdout, stderr io.Writer) error {
	log.SetOutput(stderr)
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Platform detection happens before any network traffic so an
	// unsupported host fails fast and offline.
	key, err := platform.Host()
	if err != nil {
		return err
	}
	artifact, err := platform.ArtifactName(key)
	if err != nil {
		return err
	}
	logStep(stderr, "Platform: %s", key)
	logDetail(stderr, "release artifact %s", artifact)

	dir, err := install.ResolveDir(firstSet(opts.installDir, cfg.InstallDir))
	if err != nil {
		return err
	}
	ins := install.New(dir)
	if err := ins.EnsureDir(); err != nil {
		return err
	}
	if ins.NoExecMount() {
		fmt.Fprintf(stderr, "warning: %s is on a noexec filesystem; the installed binary may not run from there\n", dir)
	}

	userAgent := gh.UserAgent(version)
	pinned := firstSet(opts.tag, os.Getenv("DYMO_VERSION"))
	client := release.NewClient(release.APIBase(cfg.Source.APIBase), cfg.Repo.ID, userAgent)
	tag, err := client.Resolve(pinned)
	if err != nil {
		// Version resolution is recoverable: the mirror route is
		// addressed by branch, not release tag.
		fmt.Fprintf(stderr, "warning: %v; falling back to the mirror\n", err)
		tag = ""
	}
	if tag != "" {
		logStep(stderr, "Installing dymo-code %s", update.FormatVersionDisplay(tag))
	}

	dest := filepath.Join(dir, platform.InstallName(key))
	if opts.ifNeeded {
		decision, why := update.Decide(ins.ReadStamp(), tag, false)
		logDetail(stderr, "%s", why)
		if decision == update.DecisionSkip {
			if err := registerPath(dir, stderr); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "dymo-code %s is already installed at %s.\n", update.FormatVersionDisplay(tag), dest)
			return nil
		}
	}

	builder := source.Builder{
		DownloadBase: cfg.Source.DownloadBase,
		Repo:         cfg.Repo.ID,
		MirrorScheme: cfg.Source.Mirror.Scheme,
		MirrorBase:   cfg.Source.Mirror.Base,
		MirrorRef:    cfg.Source.Mirror.Ref,
		MirrorPath:   cfg.Source.Mirror.Path,
	}
	candidates := builder.Candidates(artifact, tag)

	dl := fetch.NewDownloader(userAgent)
	dl.Out = stderr
	if cfg.Download.Attempts > 0 {
		dl.PrimaryAttempts = cfg.Download.Attempts
	}
	if cfg.Download.BackoffSeconds != nil {
		dl.Backoff = time.Duration(*cfg.Download.BackoffSeconds) * time.Second
	}
	if cfg.Download.MinSizeBytes > 0 {
		dl.MinSize = cfg.Download.MinSizeBytes
	}

	staging, attempts, err := dl.Fetch(candidates, dest)
	if err != nil {
		if errors.Is(err, fetch.ErrExhausted) {
			logDetail(stderr, "%d download attempts failed", len(attempts))
			manual := &fallback.Manual{In: stdin, Out: stderr, OpenURL: openURL, AssumeYes: opts.assumeYes}
			manual.Run(candidates[0].URL, dest)
			return errManualCompletion
		}
		return err
	}

	final, err := ins.Place(staging, platform.InstallName(key))
	if err != nil {
		return err
	}
	if tag != "" {
		if err := ins.WriteStamp(tag); err != nil {
			log.Debugf("version stamp: %v", err)
		}
	}

	if err := registerPath(dir, stderr); err != nil {
		return err
	}

	logStep(stderr, "Installed dymo-code to %s", final)
	fmt.Fprintln(stdout, "dymo-code installed. Open a new shell, or run 'dymo-code' right away.")
	return nil
}

// registerPath makes dir reachable both for future shells (startup files)
// and for the rest of the current process.
func registerPath(dir string, stderr io.Writer) error {
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	updated, err := shellpath.New(home).EnsureOnPath(dir)
	if err != nil {
		return err
	}
	for _, f := range updated {
		logDetail(stderr, "added %s to PATH in %s", dir, f)
	}
	if shellpath.EnsureProcessPath(dir) {
		log.Debugf("prepended %s to the process PATH", dir)
	}
	return nil
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
