package pipeline

// Tuple is a fixed group of elements produced by Zip, Product and GroupBy.
// GroupBy yields pairs of a key and a []any of values.
type Tuple []any

// Pair builds a 2-tuple, the element shape ToDict expects.
func Pair(key, value any) Tuple {
	return Tuple{key, value}
}

// Key returns the first element of a pair.
func (t Tuple) Key() any {
	if len(t) == 0 {
		return nil
	}

	return t[0]
}

// Value returns the second element of a pair.
func (t Tuple) Value() any {
	if len(t) < 2 {
		return nil
	}

	return t[1]
}

func pairOf(v any) (Tuple, bool) {
	switch val := v.(type) {
	case Tuple:
		return val, len(val) == 2
	case []any:
		return Tuple(val), len(val) == 2
	case [2]any:
		return Tuple{val[0], val[1]}, true
	default:
		return nil, false
	}
}
