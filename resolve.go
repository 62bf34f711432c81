package reveal

import "fmt"

// Resolve produces the ordered element list for one activation: explicit
// handles in caller order, then selector matches under root in document
// order. A node listed explicitly is not repeated by the selector. An empty
// result is valid. The only error is a malformed selector; nil or repeated
// explicit handles are rejected by Config.Validate before this is called.
func Resolve(explicit []*Node, root *Node, selector string) ([]*Node, error) {
	out := make([]*Node, 0, len(explicit))
	seen := make(map[*Node]struct{}, len(explicit))
	for _, n := range explicit {
		if n == nil {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if selector == "" || root == nil {
		return out, nil
	}
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, n := range sel.Select(root) {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}
