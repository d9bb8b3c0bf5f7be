package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSupportedMatrix(t *testing.T) {
	tests := []struct {
		kernel  string
		machine string
		want    Key
	}{
		{"Linux", "x86_64", Key{OS: "linux", Arch: "x86_64"}},
		{"Linux", "aarch64", Key{OS: "linux", Arch: "arm64"}},
		{"Darwin", "x86_64", Key{OS: "macos", Arch: "x86_64"}},
		{"Darwin", "arm64", Key{OS: "macos", Arch: "arm64"}},
		{"MINGW64_NT-10.0-19045", "x86_64", Key{OS: "windows", Arch: "x86_64"}},
		{"MSYS_NT-10.0", "x86_64", Key{OS: "windows", Arch: "x86_64"}},
		{"CYGWIN_NT-10.0", "x86_64", Key{OS: "windows", Arch: "x86_64"}},
		// GOOS/GOARCH spellings resolve through the same alias tables.
		{"linux", "amd64", Key{OS: "linux", Arch: "x86_64"}},
		{"darwin", "arm64", Key{OS: "macos", Arch: "arm64"}},
		{"windows", "amd64", Key{OS: "windows", Arch: "x86_64"}},
	}
	for _, tt := range tests {
		t.Run(tt.kernel+"/"+tt.machine, func(t *testing.T) {
			got, err := Detect(tt.kernel, tt.machine)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	tests := []struct {
		kernel  string
		machine string
	}{
		{"Plan9", "mips"},
		{"Plan9", "x86_64"},
		{"Linux", "mips"},
		{"Linux", "riscv64"},
		{"", "x86_64"},
		{"Linux", ""},
	}
	for _, tt := range tests {
		t.Run(tt.kernel+"/"+tt.machine, func(t *testing.T) {
			_, err := Detect(tt.kernel, tt.machine)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		kernel  string
		machine string
		want    string
	}{
		{"Linux", "x86_64", "dymo-code-linux-x86_64"},
		{"Linux", "aarch64", "dymo-code-linux-arm64"},
		{"Darwin", "x86_64", "dymo-code-macos-x86_64"},
		{"Darwin", "arm64", "dymo-code-macos-arm64"},
		{"MINGW64_NT-10.0", "x86_64", "dymo-code-windows-x86_64.exe"},
		{"MINGW64_NT-10.0", "aarch64", "dymo-code-windows-arm64.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key, err := Detect(tt.kernel, tt.machine)
			require.NoError(t, err)
			name, err := ArtifactName(key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestArtifactNameUnmappedKey(t *testing.T) {
	_, err := ArtifactName(Key{OS: "plan9", Arch: "mips"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestInstallName(t *testing.T) {
	assert.Equal(t, "dymo-code", InstallName(Key{OS: "linux", Arch: "x86_64"}))
	assert.Equal(t, "dymo-code", InstallName(Key{OS: "macos", Arch: "arm64"}))
	assert.Equal(t, "dymo-code.exe", InstallName(Key{OS: "windows", Arch: "x86_64"}))
}
