// Package spectrum holds a single observed spectrum and the index
// bookkeeping used to cut it into analysis windows.
//
// A [Spectrum] is immutable once built. Windows are addressed by nominal
// wavelength: [SliceByWavelength] resolves each bound to the nearest
// sample and returns a half-open [Region]. Features are removed from a
// window with [Excise], which builds a new masked copy by index-range
// exclusion instead of deleting in place.
//
// # Usage
//
//	s, _ := spectrum.Load("DESI_WDJ110344.93+510048.61_bin0p2.dat")
//	r, _ := spectrum.SliceByWavelength(s, 6200, 7000)
//	win := s.Slice(r)
//	dip, _ := spectrum.SliceByWavelength(win, 6500, 6650)
//	masked := spectrum.Excise(win.Wavelength, win.Flux, dip.Range())
package spectrum
