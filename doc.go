// Package imageplanes renders a procedurally generated stack of image planes
// with points projected across them.
//
// # Overview
//
// The scene is derived entirely from four parameters (plane count, point
// count, point size and base plane size). Plane i sits at depth i and is
// scaled by i, so under perspective every plane covers the same footprint.
// Each base point on the first plane is projected onto every deeper plane
// along the ray from the origin: the copy on plane d sits at p*d.
//
// # Quick Start
//
//	e, err := imageplanes.New(imageplanes.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e.Windows().Open("main", image.Pt(1280, 720), 1)
//
//	for running {
//	    _ = e.Panel().Set("planes.count", "5") // settings UI edits
//	    res := e.Frame()
//	    _ = e.Render(target, renderer)
//	    _ = res
//	}
//
// # Frame Order
//
// Engine.Frame runs the core once per frame, strictly in this order:
//
//  1. UI scale is applied if it changed
//  2. the input gate decides whether camera input is enabled
//  3. camera input consumers run with that decision
//  4. the scene is rebuilt if the parameters changed
//  5. new shared resources and model matrices are uploaded to the GPU pool
//     and the unlit shader is compiled, if a pool is attached
//  6. secondary viewports are recomputed for the current resolution
//
// # Architecture
//
//   - params: parameter store with a single-consumer change gate
//   - resource: memoized meshes and materials; point #k keeps its color
//   - scenegraph: generation-tagged entity arena, rebuild, hit resolution
//   - viewport: picture-in-picture rectangles from fractional configs
//   - input: camera input arbitration against UI and gizmos
//   - settings: UI and gizmo settings and the settings panel model
//   - render: cameras, draw lists and a software renderer
//   - gpu: device-side mirror of the resource cache
//   - surface: window registry with a primary window
//   - config: TOML and YAML configuration files
//
// # Logging
//
// imageplanes is silent by default. See SetLogger.
package imageplanes
