package update

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type Decision string

const (
	DecisionInstall   Decision = "install"   // nothing installed or versions differ
	DecisionSkip      Decision = "skip"      // already at target version
	DecisionReinstall Decision = "reinstall" // same version, force requested
)

// FormatVersionDisplay adds the "v" prefix for display when missing.
func FormatVersionDisplay(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// Decide determines whether the pipeline should download and install.
//
// installed: tag recorded by the previous run ("" when unknown)
// target:    resolved release tag ("" when version resolution failed)
// force:     true when the caller wants an unconditional replace
//
// Unknown or non-semver versions always install: a redundant download is
// cheaper than a wrongly skipped one.
func Decide(installed, target string, force bool) (Decision, string) {
	if force {
		if installed != "" && installed == target {
			return DecisionReinstall, fmt.Sprintf("Reinstalling dymo-code %s", FormatVersionDisplay(target))
		}
		return DecisionInstall, installMessage(installed, target)
	}

	if installed == "" || target == "" {
		return DecisionInstall, installMessage(installed, target)
	}

	cur, err := semver.NewVersion(strings.TrimPrefix(installed, "v"))
	if err != nil {
		return DecisionInstall, fmt.Sprintf("Cannot compare installed version %q; installing %s", installed, FormatVersionDisplay(target))
	}
	want, err := semver.NewVersion(strings.TrimPrefix(target, "v"))
	if err != nil {
		return DecisionInstall, fmt.Sprintf("Cannot compare target version %q; installing it", target)
	}

	if cur.Equal(want) {
		return DecisionSkip, fmt.Sprintf("dymo-code %s is already installed", FormatVersionDisplay(target))
	}
	if cur.GreaterThan(want) {
		return DecisionInstall, fmt.Sprintf("Downgrading dymo-code: %s -> %s", FormatVersionDisplay(installed), FormatVersionDisplay(target))
	}
	return DecisionInstall, fmt.Sprintf("Updating dymo-code: %s -> %s", FormatVersionDisplay(installed), FormatVersionDisplay(target))
}

func installMessage(installed, target string) string {
	switch {
	case target == "":
		return "Installing dymo-code (latest, via mirror)"
	case installed == "":
		return fmt.Sprintf("Installing dymo-code %s", FormatVersionDisplay(target))
	default:
		return fmt.Sprintf("Installing dymo-code %s (replacing %s)", FormatVersionDisplay(target), FormatVersionDisplay(installed))
	}
}
