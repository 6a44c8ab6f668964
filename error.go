package resutils

import "github.com/rotisserie/eris"

var (
	ErrGdalDriverCreate  = eris.New("gdal driver create err")
	ErrInvalidTif        = eris.New("invalid tif")
	ErrWrongTif          = eris.New("wrong tif")
	ErrTifReadFailed     = eris.New("tif read failed")
	ErrTifWriteFailed    = eris.New("tif write failed")
	ErrEmptyRaster       = eris.New("raster has no valid value")
	ErrShapeMismatch     = eris.New("raster shape mismatch")
	ErrZeroPixelSize     = eris.New("geotransform with zero pixel size")
	ErrReference         = eris.New("invalid spatial reference")
	ErrTransformFailed   = eris.New("coordinate transform failed")
	ErrInvalidClassCount = eris.New("quantile count must be at least 2")
	ErrClassification    = eris.New("no distinct quantile breakpoints")
	ErrTooManyClasses    = eris.New("too many classes for color table")
	ErrNotFound          = eris.New("indicator not found")
	ErrArithmetic        = eris.New("degenerate arithmetic")
	ErrUnknownPalette    = eris.New("unknown palette")
)
