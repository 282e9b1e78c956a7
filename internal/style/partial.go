package style

// Partial update keys accepted from page script via the bridge's
// setStyle message. Unspecified keys retain their current value;
// unknown keys are reported back for debug logging, never an error.
const (
	KeyCornerRadius      = "cornerRadius"
	KeyTransparent       = "transparent"
	KeyBackgroundOpacity = "backgroundOpacity"
	KeyAlwaysOnTop       = "alwaysOnTop"
)

// ApplyPartial merges a decoded partial style object into the model and
// returns the keys it did not recognize.
func (s *WindowStyle) ApplyPartial(fields map[string]interface{}) []string {
	var unknown []string
	for key, raw := range fields {
		switch key {
		case KeyCornerRadius:
			if n, ok := asFloat(raw); ok {
				s.CornerRadius = int(n)
			}
		case KeyTransparent:
			if b, ok := raw.(bool); ok {
				s.Transparent = b
			}
		case KeyBackgroundOpacity:
			if n, ok := asFloat(raw); ok {
				s.BackgroundOpacity = clamp01(n)
			}
		case KeyAlwaysOnTop:
			if b, ok := raw.(bool); ok {
				s.AlwaysOnTop = b
			}
		default:
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func asFloat(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
