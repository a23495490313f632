// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface tracks the windows the scene is presented on.
//
// A Registry records every open window with its physical size and marks one
// of them primary. The scene builder waits for a primary window before it
// generates anything, and the viewport compositor sizes picture-in-picture
// viewports from the primary window's resolution:
//
//	windows := surface.NewRegistry()
//	id := windows.Open("main", image.Pt(1280, 720), 1)
//
//	// on resize
//	_ = windows.Resize(id, image.Pt(1920, 1080))
//
//	size, ok := windows.PrimarySize()
//
// Window creation itself belongs to the host; the registry only mirrors it.
package surface
