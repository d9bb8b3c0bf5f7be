package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		target    string
		force     bool
		want      Decision
	}{
		{"fresh install", "", "v1.2.3", false, DecisionInstall},
		{"same version skips", "v1.2.3", "v1.2.3", false, DecisionSkip},
		{"same version without prefix skips", "1.2.3", "v1.2.3", false, DecisionSkip},
		{"older installed updates", "v1.2.2", "v1.2.3", false, DecisionInstall},
		{"newer installed downgrades", "v2.0.0", "v1.9.0", false, DecisionInstall},
		{"unknown target installs", "v1.2.3", "", false, DecisionInstall},
		{"garbage installed version installs", "not-a-version", "v1.2.3", false, DecisionInstall},
		{"garbage target installs", "v1.2.3", "some-tag", false, DecisionInstall},
		{"force same version reinstalls", "v1.2.3", "v1.2.3", true, DecisionReinstall},
		{"force different version installs", "v1.0.0", "v1.2.3", true, DecisionInstall},
		{"force fresh installs", "", "v1.2.3", true, DecisionInstall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := Decide(tt.installed, tt.target, tt.force)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestFormatVersionDisplay(t *testing.T) {
	assert.Equal(t, "v1.2.3", FormatVersionDisplay("1.2.3"))
	assert.Equal(t, "v1.2.3", FormatVersionDisplay("v1.2.3"))
	assert.Equal(t, "", FormatVersionDisplay(""))
}
