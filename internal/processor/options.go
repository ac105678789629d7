package processor

// ProcessingOptions configures the image pipeline
type ProcessingOptions struct {
	// Output geometry
	TargetWidth         int
	TargetHeight        int
	PreserveAspectRatio bool

	// Encoding
	Quality     float64 // JPEG quality factor in (0,1]
	MaxFileSize int64   // upper bound on the encoded output, in bytes

	// Stage toggles
	AutoRotate     bool
	EnhanceQuality bool
	ReduceNoise    bool
	Binarize       bool // adaptive thresholding for text-forward output

	// Enhancement tuning
	ContrastFactor float64 // linear stretch factor, empirically 1.3-2.0
	SharpenCenter  float64 // 3x3 kernel center weight, 9-15
}

// DefaultOptions returns the documented pipeline defaults
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		TargetWidth:         1024,
		TargetHeight:        768,
		PreserveAspectRatio: true,
		Quality:             0.9,
		MaxFileSize:         5 * 1024 * 1024,
		AutoRotate:          true,
		EnhanceQuality:      true,
		ReduceNoise:         true,
		Binarize:            false,
		ContrastFactor:      1.3,
		SharpenCenter:       9,
	}
}

// AggressiveOptions returns options tuned for low-quality captures
func AggressiveOptions() ProcessingOptions {
	opts := DefaultOptions()
	opts.ContrastFactor = 2.0
	opts.SharpenCenter = 15
	opts.Binarize = true
	return opts
}

// WithTarget overrides the output bounding box
func (opts ProcessingOptions) WithTarget(width, height int) ProcessingOptions {
	opts.TargetWidth = width
	opts.TargetHeight = height
	return opts
}

// WithQuality overrides the encoding quality factor
func (opts ProcessingOptions) WithQuality(quality float64) ProcessingOptions {
	opts.Quality = quality
	return opts
}

// WithoutEnhancement disables the conditional enhancement stages
func (opts ProcessingOptions) WithoutEnhancement() ProcessingOptions {
	opts.EnhanceQuality = false
	opts.ReduceNoise = false
	opts.Binarize = false
	return opts
}

// WithoutRotation disables automatic orientation correction
func (opts ProcessingOptions) WithoutRotation() ProcessingOptions {
	opts.AutoRotate = false
	return opts
}

// Validate reports whether the options are internally consistent
func (opts ProcessingOptions) Validate() bool {
	return opts.TargetWidth > 0 && opts.TargetHeight > 0 &&
		opts.Quality > 0 && opts.Quality <= 1 &&
		opts.MaxFileSize > 0 &&
		opts.ContrastFactor > 0 && opts.SharpenCenter > 8
}
