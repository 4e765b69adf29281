/*
Package segment implements a fluid segmented selector: the interaction
engine behind a bottom navigation bar or an in-content tab group, where the
user either taps an option or drags across the row and lets go.

# Overview

A Selector is built from four parts:

	Registry     which option lies under x, and where option i is, read from live layout
	Tracker      pointer stream -> idle / pointer-down / dragging / released, plus velocity
	Synthesizer  velocity and displacement -> indicator keyframes (harmonica springs)
	Resolver     finished gesture -> exactly one selection request to the host

The engine never owns the active index. It asks the host to select through a
SelectFunc and rests its indicator wherever the host confirms with
SetActiveIndex.

# Quick Start

	tabs := []string{"overview", "quizzes", "assignments"}
	layout := segment.RowLayout{Bounds: tabRowBounds, Gap: segment.SpaceSM}

	group := segment.NewTabGroup(layout, &tabs, func(i int) error {
	    return page.ShowTab(tabs[i])
	}, segment.WithLogger(logger))

	// When the page confirms (or navigates by itself):
	group.SetActiveIndex(page.CurrentTab())

	// Input callbacks:
	group.HandlePointer(segment.Down(x, y, t))
	group.HandlePointer(segment.Move(x, y, t))
	group.HandlePointer(segment.Up(x, y, t))

	// Each frame:
	group.Update(dt)
	group.Draw(drawList, segment.DefaultStyle())

# Gestures

	Press and release within DragThreshold    plain click: option under the release point
	Press, move past DragThreshold, release   drag: last option the pointer was inside
	Drag that never entered an option         nearest option to the release point
	Platform cancel at any time               no selection; indicator returns home

Only displacement from the press origin counts toward the threshold. A
second pointer pressed during a gesture is ignored.

# Motion

While dragging the indicator follows the pointer, clamped inside the row,
and deforms by one of three profiles chosen by ClassifyMotion: slow deform,
snap right, snap left. Releases settle with a critically damped spring.
Programmatic changes jump with an under-damped spring whose damping drops
and whose duration grows with the number of options crossed.

# Configuration

Config values can be loaded from YAML with a Loader, which layers defaults,
an optional file and SEGMENT_* environment variables:

	bottom_bar:
	  drag_threshold: 8
	  motion:
	    snap_velocity: 1.2
	tab_group:
	  drag_threshold: 6
*/
package segment
