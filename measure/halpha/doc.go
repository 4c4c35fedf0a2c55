// Package halpha runs the Hα Zeeman-triplet analysis of one white-dwarf
// spectrum.
//
// The stages are:
//
//  1. slice the broad Hα window and the absorption window by wavelength,
//  2. excise the absorption dip and any artifact bands from the broad window,
//  3. fit a cubic continuum to what remains and evaluate it over the broad window,
//  4. divide the broad window by the continuum,
//  5. clip the normalised flux to the triplet window,
//  6. fit the Voigt and/or Lorentzian triplet models.
//
// Every intermediate array is kept on the Analysis so plots and reports can
// be rebuilt without rerunning the fits.
package halpha
