package cache

// Keyer generates cache keys.
type Keyer interface {
	// FrameKey returns the key of one rendered frame.
	FrameKey(opts FrameKeyOpts) string
}

// FrameKeyOpts are the inputs that determine a frame's bytes.
type FrameKeyOpts struct {
	ConfigHash string  `json:"config"`
	Pattern    string  `json:"pattern"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   float64 `json:"rotation"`
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "frame:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey hashes all options into one key.
func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame", opts)
}
