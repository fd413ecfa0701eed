// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"strings"

	"farmacia/cli/internal/model"
)

// BuildMode is set at link time: -ldflags "-X farmacia/cli/internal/manifest.BuildMode=development".
var BuildMode = string(ModeProduction)

// CurrentMode returns override ("dev" is accepted for development) when it is
// set, else BuildMode.
func CurrentMode(override string) Mode {
	if v := strings.ToLower(strings.TrimSpace(override)); v != "" {
		if v == "dev" {
			v = string(ModeDevelopment)
		}
		return Mode(v)
	}
	return Mode(BuildMode)
}

// Resolve builds the manifest for the given mode and platform.
func Resolve(mode Mode, platform model.Platform) *Manifest {
	return &Manifest{
		Mode:     mode,
		Platform: platform,
		BaseURL:  BaseURLFor(mode, platform),
		HTTP:     DefaultEndpoints(),
	}
}

// GetEndpoints resolves the manifest for the current process. mode is the
// configured override, usually from FARMACIA_ENV.
func GetEndpoints(mode string, platform model.Platform) *Manifest {
	return Resolve(CurrentMode(mode), platform)
}
