package detect

import (
	"strings"

	"github.com/statline/statline/internal/config"
	"github.com/statline/statline/internal/platform"
)

// Probe is a single filesystem-based test for one container or sandbox
// technology. Detect reports the display name and whether the probe
// matched. A matching probe ends the chain.
type Probe struct {
	Name   string
	Detect func(ctx *platform.Context, cfg config.Container) (string, bool)
}

// Chain is the probe sequence in priority order. Cheap unambiguous markers
// come first; the containerenv file carries richer metadata than the generic
// systemd marker, so it is checked earlier and its verdict is final once the
// file exists.
var Chain = []Probe{
	{Name: "openvz", Detect: detectOpenVZ},
	{Name: "oci", Detect: detectOCI},
	{Name: "containerenv", Detect: detectContainerEnv},
	{Name: "systemd", Detect: detectSystemd},
	{Name: "dockerenv", Detect: detectDockerEnv},
}

// ContainerName runs the probe chain and returns the display name of the
// surrounding container, or false when the process is not inside one.
func ContainerName(ctx *platform.Context, cfg config.Container) (string, bool) {
	for _, p := range Chain {
		if name, ok := p.Detect(ctx, cfg); ok {
			return name, true
		}
	}
	return "", false
}

func detectOpenVZ(ctx *platform.Context, _ config.Container) (string, bool) {
	// /proc/bc exists only on the OpenVZ host, /proc/vz on host and guests.
	if ctx.Exists("/proc/vz") && !ctx.Exists("/proc/bc") {
		return "OpenVZ", true
	}
	return "", false
}

func detectOCI(ctx *platform.Context, _ config.Container) (string, bool) {
	if ctx.Exists("/run/host/container-manager") {
		return "OCI", true
	}
	return "", false
}

// detectContainerEnv reads the /run/.containerenv file written by podman and
// friends. Once the file exists its answer is authoritative, including the
// "podman" fallback when no matching line is found. An unreadable file falls
// through to the next probe.
func detectContainerEnv(ctx *platform.Context, cfg config.Container) (string, bool) {
	if !ctx.Exists("/run/.containerenv") {
		return "", false
	}
	body, ok := ctx.ReadText("/run/.containerenv")
	if !ok {
		return "", false
	}
	prefix := "image="
	if cfg.UseContainerName {
		prefix = "name="
	}
	for _, line := range strings.Split(body, "\n") {
		value, found := strings.CutPrefix(line, prefix)
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		if !cfg.UseContainerName {
			// Strip the registry/repository path, keep the image:tag part.
			if i := strings.LastIndex(value, "/"); i >= 0 {
				value = value[i+1:]
			}
		}
		return value, true
	}
	return "podman", true
}

// detectSystemd honors /run/systemd/container. systemd on WSL writes "wsl"
// there; that is not a container, so the probe stays silent instead of
// reporting the generic name.
func detectSystemd(ctx *platform.Context, _ config.Container) (string, bool) {
	body, ok := ctx.ReadText("/run/systemd/container")
	if !ok {
		return "", false
	}
	switch strings.TrimSpace(body) {
	case "docker":
		return "Docker", true
	case "wsl", "":
		return "", false
	default:
		return "Systemd", true
	}
}

func detectDockerEnv(ctx *platform.Context, _ config.Container) (string, bool) {
	if ctx.Exists("/.dockerenv") {
		return "Docker", true
	}
	return "", false
}
