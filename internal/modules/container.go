package modules

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/statline/statline/internal/config"
	"github.com/statline/statline/internal/detect"
	"github.com/statline/statline/internal/format"
	"github.com/statline/statline/internal/logger"
	"github.com/statline/statline/internal/platform"
	"github.com/statline/statline/internal/style"
)

// Module is one rendered status-line segment group, ready for the composer.
type Module struct {
	Name     string
	Segments []format.Segment
}

// Container builds the container segment. It returns nil when the segment is
// disabled, no container is detected, or the configured template fails to
// render; a bad user template degrades to an absent segment and a warning,
// never an error for the prompt loop.
func Container(ctx *platform.Context, cfg config.Container, log logger.Logger) *Module {
	if cfg.Disabled {
		return nil
	}

	name, ok := detect.ContainerName(ctx, cfg)
	if !ok {
		return nil
	}

	tmpl, err := format.Parse(cfg.Format)
	if err != nil {
		log.Warn("container_format_error", "error", err.Error())
		return nil
	}

	segs, err := format.Render(tmpl, format.Resolvers{
		Variable: func(n string) (string, bool, error) {
			if n == "name" {
				return name, true, nil
			}
			return "", false, nil
		},
		Meta: func(n string) (string, bool, error) {
			if n == "symbol" {
				return cfg.Symbol, true, nil
			}
			return "", false, nil
		},
		Style: func(n string) (lipgloss.Style, bool, error) {
			if n != "style" {
				return lipgloss.Style{}, false, nil
			}
			st, err := style.Parse(cfg.Style)
			if err != nil {
				return lipgloss.Style{}, true, err
			}
			return st, true, nil
		},
	})
	if err != nil {
		log.Warn("container_format_error", "error", err.Error())
		return nil
	}

	return &Module{Name: "container", Segments: segs}
}
