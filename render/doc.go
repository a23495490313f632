// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns the generated scene into per-camera draw lists and
// rasterizes them for preview.
//
// # Key Principle
//
// render RECEIVES everything it draws. Entities come from the scene graph as
// values, meshes and materials from the resource cache, viewport rectangles
// from the compositor. Nothing here owns scene state, so the same draw list
// can be rendered any number of times.
//
// # Core Types
//
//   - Camera: position, target, up and perspective parameters, optionally
//     bound to a named viewport
//   - DrawList: the items one camera sees, sorted for painter's order,
//     plus debug lines such as the world axes
//   - Renderer: executes draw lists into a Target
//   - Software: CPU renderer built on golang.org/x/image/vector
//
// # Usage
//
//	cam := render.PrimaryCamera()
//	list := render.Collect(cam, target.Bounds(), builder.Entities(), res)
//	list.Lines = append(list.Lines, render.WorldAxes()...)
//
//	sw := render.NewSoftware(render.WithMeshes(res))
//	if err := sw.Render(target, list); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
//
// GPU integration goes through DeviceHandle, an alias of
// gpucontext.DeviceProvider, which the gpu package consumes to upload the
// same meshes and materials.
package render
