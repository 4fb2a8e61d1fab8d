// Package document turns a page of a PDF file into a bitmap.
//
// Page counting reads the page tree with seehuhn.de/go/pdf. Rendering is
// delegated to a PageRasterizer; the default one shells out to Ghostscript
// at 72 DPI so one PDF point becomes one pixel.
package document
