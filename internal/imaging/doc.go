// Package imaging loads, converts and exports the images shown by the viewer.
//
// It sits between the standard image.Image world (decoders, disintegration/imaging)
// and the typed pixel model used by transformation operations:
//
//   - ImageCache decodes files once and keeps them keyed by path.
//   - LoadImageInfo describes a file for the info panel.
//   - ToRaster and FromRaster convert to and from normalized float RGBA.
//   - ApplyPipeline and Prepare run registered operations over a raster.
//   - SampleColor and ExportRegion read pixels back out.
//
// # Coordinate System
//
// Coordinates are image pixels with (0,0) at the top-left corner. Regions are
// half-open: Min is inclusive, Max is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Decoded images are treated as
// read-only; conversions always allocate new images.
package imaging
