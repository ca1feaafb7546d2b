// Package raster is a software rendering backend. It builds renderables
// for layer nodes only and composites the attached tree into an RGBA
// image on the CPU.
//
// It exists for headless hosts and for tests: the compositor output is a
// plain *image.RGBA that can be diffed pixel by pixel. Text, text field
// and Vulkan surface nodes are not implemented here.
package raster
