// Package tuning provides parsing and sampling helpers for the range-valued
// strings used throughout the animation configuration.
//
// 动画配置中的数值既可以是固定值 "12"，也可以是随机范围 "[6 14]"。
// 每次生成粒子时从范围内均匀采样，让同类粒子外观有自然差异。
package tuning

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Range is a closed numeric interval particles sample from at spawn time.
type Range struct {
	Min float64
	Max float64
}

// ParseRange parses a tuning value string.
// Supported formats:
//   - Fixed value: "12" → {12, 12}
//   - Range: "[6 14]" → {6, 14}
//   - Single-value range: "[3]" → {3, 3}
//
// 空字符串返回零值范围（不报错），格式错误返回 error。
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(inner)
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("tuning: bad range value %q: %w", s, err)
			}
			return Range{Min: v, Max: v}, nil
		case 2:
			lo, err1 := strconv.ParseFloat(parts[0], 64)
			hi, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				return Range{}, fmt.Errorf("tuning: bad range %q", s)
			}
			if hi < lo {
				lo, hi = hi, lo
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("tuning: range %q must hold 1 or 2 values", s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("tuning: bad value %q: %w", s, err)
	}
	return Range{Min: v, Max: v}, nil
}

// MustRange is ParseRange for compiled-in defaults; it panics on bad input.
// 仅用于包内默认配置常量，运行期输入一律走 ParseRange。
func MustRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Roll samples a uniformly random value from the range.
func (r Range) Roll() float64 {
	return RandomInRange(r.Min, r.Max)
}

// RandomInRange returns a random float64 in [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
