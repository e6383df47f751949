// Package dispatcher drives render passes from window manager events.
//
// One goroutine owns the event stream and runs every pass to completion
// before reading the next event, so passes never overlap.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/bryanchriswhite/i3windows/internal/logger"
	"github.com/bryanchriswhite/i3windows/internal/output"
	"github.com/bryanchriswhite/i3windows/internal/window"
	"github.com/rs/zerolog"
)

// LineRenderer turns a snapshot into a bar line
type LineRenderer interface {
	Render(snap *window.Snapshot, group *int) (string, error)
}

// Dispatcher renders on startup and after every relevant event
type Dispatcher struct {
	backend  window.Backend
	renderer LineRenderer
	out      output.Output
	group    *int
	log      *zerolog.Logger
}

// New creates a dispatcher. group selects a workspace group, nil shows all.
func New(backend window.Backend, renderer LineRenderer, out output.Output, group *int) *Dispatcher {
	return &Dispatcher{
		backend:  backend,
		renderer: renderer,
		out:      out,
		group:    group,
		log:      logger.WithComponent("dispatcher"),
	}
}

// RenderOnce runs one pass: snapshot, render, write. Nothing is written
// when any step fails.
func (d *Dispatcher) RenderOnce(ctx context.Context) error {
	snap, err := d.backend.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read window state: %w", err)
	}

	line, err := d.renderer.Render(snap, d.group)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	if err := d.out.WriteLine(line); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

// Run subscribes, renders once, then renders after each relevant event until
// ctx is cancelled (nil) or the connection or a pass fails (error).
func (d *Dispatcher) Run(ctx context.Context) error {
	stream, err := d.backend.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s events: %w", d.backend.Name(), err)
	}
	defer stream.Close()

	stop := context.AfterFunc(ctx, func() {
		stream.Close()
	})
	defer stop()

	if err := d.RenderOnce(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	d.log.Info().Str("backend", d.backend.Name()).Msg("Watching for changes")

	for stream.Next() {
		ev := stream.Event()
		if !ev.Relevant() {
			d.log.Debug().Str("change", ev.Change).Msg("Ignoring event")
			continue
		}

		d.log.Debug().Str("kind", string(ev.Kind)).Str("change", ev.Change).Msg("Rendering")
		if err := d.RenderOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("render after %s: %w", ev.Kind, err)
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := stream.Err(); err != nil {
		return err
	}
	return window.ErrConnectionLost
}
