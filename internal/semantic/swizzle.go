package semantic

import "github.com/cwbudde/glslx-go/internal/types"

// swizzleAlphabets are the three accepted component-selector letter sets
// (spec.md §4.3); a swizzle may use exactly one of them, never mixed.
var swizzleAlphabets = [3]string{"xyzw", "stpq", "rgba"}

// swizzleIndex returns the component index (0-3) of ch within whichever
// alphabet it belongs to, and which alphabet that was, or ok=false if ch
// belongs to none of them.
func swizzleIndex(ch byte) (alphabet int, index int, ok bool) {
	for ai, alpha := range swizzleAlphabets {
		for i := 0; i < len(alpha); i++ {
			if alpha[i] == ch {
				return ai, i, true
			}
		}
	}
	return 0, 0, false
}

// validateSwizzle checks a field-access name against the vector's
// component count N, returning the resulting type (or nil plus a reason
// string if it is not a legal swizzle). A swizzle is an l-value iff no
// character repeats.
func validateSwizzle(base types.Type, name string) (resultType types.Type, isLValue bool, reason string) {
	if len(name) == 0 || len(name) > 4 {
		return nil, false, "swizzle must select 1 to 4 components"
	}
	n := base.ComponentCount()
	alphabet := -1
	seen := map[byte]bool{}
	repeated := false
	indices := make([]int, 0, len(name))

	for i := 0; i < len(name); i++ {
		ch := name[i]
		ai, idx, ok := swizzleIndex(ch)
		if !ok {
			return nil, false, "unknown swizzle component " + string(ch)
		}
		if alphabet == -1 {
			alphabet = ai
		} else if ai != alphabet {
			return nil, false, "cannot mix swizzle alphabets (xyzw/stpq/rgba)"
		}
		if idx >= n {
			return nil, false, "swizzle component index out of range for this vector"
		}
		if seen[ch] {
			repeated = true
		}
		seen[ch] = true
		indices = append(indices, idx)
	}

	component := base.ComponentType()
	if len(name) == 1 {
		return component, true, ""
	}
	result := types.VectorOf(component, len(name))
	if result == nil {
		return nil, false, "no vector type has that many components"
	}
	return result, !repeated, ""
}
