// Package pkg provides the core libraries for slidekit slide rendering.
//
// # Overview
//
// Slidekit turns declarative slide documents into pixel output. A slide is
// a fixed canvas with layered backgrounds (colors, gradients, images) and
// styled text boxes; the same document renders through two interchangeable
// backends. The pkg directory is organized into four main areas:
//
//  1. [slide] - The document model: parsing, validation, content hashing
//  2. [layout] - Pure geometry: coordinate resolution, text wrapping, gradients
//  3. [render] - The engine and its backends (raster, svg)
//  4. [pipeline] - Orchestration (validate → render → encode → cache)
//
// supported by [fonts] (registry, download, face caching), [cache]
// (file/memory/Redis byte caches with content-hash keys), [httputil]
// (retrying fetches), [errors] (structured codes), and [observability]
// (render/cache/HTTP hooks).
//
// # Architecture
//
// The typical data flow through slidekit:
//
//	Slide JSON document
//	         ↓
//	    [slide] package (decode + validate + hash)
//	         ↓
//	    [layout] package (coordinates, wrapping, gradient geometry)
//	         ↓
//	    [render] package (paint-order walk onto a Surface)
//	         ↓
//	    [render/raster] or [render/svg] backend
//	         ↓
//	    PNG/JPEG/SVG output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	res, err := runner.Render(ctx, doc, pipeline.Options{Format: pipeline.FormatPNG})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("slide.png", res.Data, 0o644)
package pkg
